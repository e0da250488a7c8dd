package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lifeenergy/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_occurred,priority:1"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255)"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OccurredOn  time.Time       `gorm:"type:date;not null;index:idx_expenses_user_occurred,priority:2"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		UserID:      m.UserID,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		Amount:      m.Amount,
		OccurredOn:  m.OccurredOn,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          expense.ID,
		UserID:      expense.UserID,
		CategoryID:  expense.CategoryID,
		Description: expense.Description,
		Amount:      expense.Amount,
		OccurredOn:  expense.OccurredOn,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

// IncomeModel represents the incomes table in the database.
type IncomeModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_incomes_user_received,priority:1"`
	Source       string          `gorm:"type:varchar(255)"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReceivedOn   time.Time       `gorm:"type:date;not null;index:idx_incomes_user_received,priority:2"`
	IsWorkIncome bool            `gorm:"not null;default:false"`
	Notes        string          `gorm:"type:text"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	User *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the IncomeModel.
func (IncomeModel) TableName() string {
	return "incomes"
}

// ToEntity converts an IncomeModel to a domain Income entity.
func (m *IncomeModel) ToEntity() *entity.Income {
	return &entity.Income{
		ID:           m.ID,
		UserID:       m.UserID,
		Source:       m.Source,
		Amount:       m.Amount,
		ReceivedOn:   m.ReceivedOn,
		IsWorkIncome: m.IsWorkIncome,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// IncomeFromEntity creates an IncomeModel from a domain Income entity.
func IncomeFromEntity(income *entity.Income) *IncomeModel {
	return &IncomeModel{
		ID:           income.ID,
		UserID:       income.UserID,
		Source:       income.Source,
		Amount:       income.Amount,
		ReceivedOn:   income.ReceivedOn,
		IsWorkIncome: income.IsWorkIncome,
		Notes:        income.Notes,
		CreatedAt:    income.CreatedAt,
		UpdatedAt:    income.UpdatedAt,
	}
}
