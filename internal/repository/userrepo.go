// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/avolkov/taskboard/internal/model"
)

// UserRepository provides CRUD access for user accounts.
type UserRepository interface {
	// Create inserts a new user; DB-assigned timestamps are written back.
	Create(ctx context.Context, u *model.User) error
	// GetAll loads every user.
	GetAll(ctx context.Context) ([]model.User, error)
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Update applies non-nil fields and returns the updated row.
	Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error)
	// Delete removes a user and returns the deleted row.
	Delete(ctx context.Context, id uuid.UUID) (*model.User, error)
}
