// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifeenergy/backend/internal/domain/entity"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Email      string           `gorm:"type:varchar(255);uniqueIndex;not null"`
	HourlyWage *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CreatedAt  time.Time        `gorm:"not null"`
	UpdatedAt  time.Time        `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:         m.ID,
		Email:      m.Email,
		HourlyWage: m.HourlyWage,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:         user.ID,
		Email:      user.Email,
		HourlyWage: user.HourlyWage,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
