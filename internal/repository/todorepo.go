package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/avolkov/taskboard/internal/model"
)

// TodoRepository provides ownership-scoped access to todos. Every per-row
// operation filters by both id and user_id, so "absent" and "not yours"
// are indistinguishable to callers.
type TodoRepository interface {
	// Create inserts a new todo; DB-assigned timestamps are written back.
	Create(ctx context.Context, td *model.Todo) error
	// GetAll loads every todo, newest first (admin view).
	GetAll(ctx context.Context) ([]model.Todo, error)
	// GetByUserID loads one owner's todos, newest first.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Todo, error)
	// GetByIDAndUserID loads a single todo matching both predicates.
	GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*model.Todo, error)
	// UpdateByIDAndUserID applies non-nil fields with a conditional write,
	// then re-reads and returns the updated row.
	UpdateByIDAndUserID(ctx context.Context, id, userID uuid.UUID, upd model.UpdateTodo) (*model.Todo, error)
	// DeleteByIDAndUserID removes a todo with a conditional delete.
	DeleteByIDAndUserID(ctx context.Context, id, userID uuid.UUID) error
}
