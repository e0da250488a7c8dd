// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an account as seen by the review engine.
// Credentials live with the external auth collaborator; only the wage matters here.
type User struct {
	ID         uuid.UUID
	Email      string
	HourlyWage *decimal.Decimal // nil when the user never set a wage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewUser creates a new User entity.
func NewUser(email string, hourlyWage *decimal.Decimal) *User {
	now := time.Now().UTC()
	return &User{
		ID:         uuid.New(),
		Email:      email,
		HourlyWage: hourlyWage,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
