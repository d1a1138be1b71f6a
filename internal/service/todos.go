package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/avolkov/taskboard/internal/errs"
	"github.com/avolkov/taskboard/internal/model"
	"github.com/avolkov/taskboard/internal/repository"
)

// TodoService defines ownership-scoped operations over todos. The owner is
// always an explicit argument derived from the session, never from the
// request body.
type TodoService interface {
	// GetAll returns every todo, newest first (admin/global view).
	GetAll(ctx context.Context) ([]model.Todo, error)
	// GetByUserID returns one owner's todos, newest first.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Todo, error)
	// GetByIDAndUserID returns a single todo matching both predicates.
	GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*model.Todo, error)
	// Create persists a todo with the owner forced to userID.
	Create(ctx context.Context, title, description string, status model.Status, userID uuid.UUID) (*model.Todo, error)
	// UpdateByIDAndUserID applies partial changes scoped to the owner.
	UpdateByIDAndUserID(ctx context.Context, id, userID uuid.UUID, upd model.UpdateTodo) (*model.Todo, error)
	// DeleteByIDAndUserID removes a todo scoped to the owner.
	DeleteByIDAndUserID(ctx context.Context, id, userID uuid.UUID) error
}

type TodoServiceImpl struct {
	todos repository.TodoRepository
}

// NewTodoService constructs TodoService with required dependencies.
func NewTodoService(todos repository.TodoRepository) *TodoServiceImpl {
	return &TodoServiceImpl{todos: todos}
}

// GetAll returns every todo, newest first.
func (s *TodoServiceImpl) GetAll(ctx context.Context) ([]model.Todo, error) {
	return s.todos.GetAll(ctx)
}

// GetByUserID returns one owner's todos, newest first.
func (s *TodoServiceImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Todo, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrInvalidInput
	}
	return s.todos.GetByUserID(ctx, userID)
}

// GetByIDAndUserID returns a single owned todo. Zero matching rows yields
// ErrNotFound whether the todo is absent or owned by someone else.
func (s *TodoServiceImpl) GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*model.Todo, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return nil, errs.ErrInvalidInput
	}
	return s.todos.GetByIDAndUserID(ctx, id, userID)
}

// Create persists a todo owned by userID. Any caller-supplied owner field is
// ignored by construction: the owner comes only from this argument.
func (s *TodoServiceImpl) Create(ctx context.Context, title, description string, status model.Status, userID uuid.UUID) (*model.Todo, error) {
	if title == "" || userID == uuid.Nil {
		return nil, errs.ErrInvalidInput
	}
	if status == "" {
		status = model.StatusPending
	}
	if !status.Valid() {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	td := &model.Todo{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      userID,
	}
	if err := s.todos.Create(ctx, td); err != nil {
		return nil, err
	}
	return td, nil
}

// UpdateByIDAndUserID applies the non-nil fields with a conditional write.
func (s *TodoServiceImpl) UpdateByIDAndUserID(ctx context.Context, id, userID uuid.UUID, upd model.UpdateTodo) (*model.Todo, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return nil, errs.ErrInvalidInput
	}
	if upd.Title != nil && *upd.Title == "" {
		return nil, errs.ErrInvalidInput
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, errs.ErrInvalidInput
	}
	return s.todos.UpdateByIDAndUserID(ctx, id, userID, upd)
}

// DeleteByIDAndUserID removes an owned todo or fails with ErrNotFound.
func (s *TodoServiceImpl) DeleteByIDAndUserID(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil || userID == uuid.Nil {
		return errs.ErrInvalidInput
	}
	return s.todos.DeleteByIDAndUserID(ctx, id, userID)
}
