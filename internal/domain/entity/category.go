// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a spending category owned by a single user.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string, isDefault bool) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
