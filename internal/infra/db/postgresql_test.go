package db

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"

	"github.com/lifeenergy/backend/config"
	"github.com/lifeenergy/backend/internal/integration/persistence/model"
)

func newTestDatabase(t *testing.T, slowThreshold time.Duration) *Database {
	t.Helper()
	database, err := open(sqlite.Open(":memory:"), &config.DatabaseConfig{
		MaxOpenConns:       1,
		MaxIdleConns:       1,
		ConnMaxLifetime:    time.Minute,
		SlowQueryThreshold: slowThreshold,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	return database
}

func TestDatabase_Migrate(t *testing.T) {
	database := newTestDatabase(t, 0)
	defer database.Close()

	if err := database.Migrate(model.All()...); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}

	migrator := database.DB().Migrator()
	for _, m := range model.All() {
		if !migrator.HasTable(m) {
			t.Errorf("expected table for %T", m)
		}
	}
	if !migrator.HasIndex(&model.MonthlyReviewModel{}, "idx_monthly_reviews_user_month") {
		t.Error("expected unique index on (user_id, month_code)")
	}
}

func TestDatabase_HealthCheck(t *testing.T) {
	t.Run("healthy while open", func(t *testing.T) {
		database := newTestDatabase(t, 50*time.Millisecond)
		defer database.Close()

		if !database.HealthCheck() {
			t.Error("expected healthy database")
		}
	})

	t.Run("unhealthy after close", func(t *testing.T) {
		database := newTestDatabase(t, 0)
		if err := database.Close(); err != nil {
			t.Fatalf("unexpected close error: %v", err)
		}

		if database.HealthCheck() {
			t.Error("expected unhealthy database after close")
		}
	})
}
