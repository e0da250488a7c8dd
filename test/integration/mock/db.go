package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory sqlite database holding the migrated models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	tables []string // migration order, parents first
}

// NewDb opens the shared database once and migrates models, which must be listed parents first.
func NewDb(models []any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	mockDb := &Db{
		DbConn: dbConn,
		models: make(map[string]any, len(models)),
		tables: make([]string, 0, len(models)),
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", model, err.Error()))
		}
		mockDb.models[stmt.Schema.Table] = model
		mockDb.tables = append(mockDb.tables, stmt.Schema.Table)
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	if err := mockDb.checkTables(); err != nil {
		panic(err.Error())
	}

	return mockDb
}

// ClearDB deletes every row, children before parents.
func (d *Db) ClearDB() error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		table := d.tables[i]
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

func (d *Db) checkTables() error {
	for table, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s for model %T was not created", table, model)
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
