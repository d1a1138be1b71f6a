package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avolkov/taskboard/internal/errs"
	"github.com/avolkov/taskboard/internal/model"
)

// TodoRepo implements TodoRepository using PostgreSQL.
type TodoRepo struct{ db *DB }

// NewTodoRepo constructs a todo repository.
func NewTodoRepo(db *DB) *TodoRepo { return &TodoRepo{db: db} }

const todoCols = `id, title, description, status, user_id, created_at, updated_at`

func scanTodo(row pgx.Row) (*model.Todo, error) {
	var td model.Todo
	err := row.Scan(&td.ID, &td.Title, &td.Description, &td.Status, &td.UserID, &td.CreatedAt, &td.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &td, nil
}

// Create inserts a new todo row. A foreign key violation means the owner id
// does not reference a real user.
func (r *TodoRepo) Create(ctx context.Context, td *model.Todo) error {
	const q = `
INSERT INTO todos (id, title, description, status, user_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, td.ID, td.Title, td.Description, td.Status, td.UserID).
		Scan(&td.CreatedAt, &td.UpdatedAt)
	if isPgCode(err, codeForeignKeyViolation) {
		return errs.ErrInvalidReference
	}
	return err
}

// GetAll selects every todo, newest first.
func (r *TodoRepo) GetAll(ctx context.Context) ([]model.Todo, error) {
	const q = `SELECT ` + todoCols + ` FROM todos ORDER BY created_at DESC`
	return r.queryTodos(ctx, q)
}

// GetByUserID selects one owner's todos, newest first.
func (r *TodoRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Todo, error) {
	const q = `SELECT ` + todoCols + ` FROM todos WHERE user_id=$1 ORDER BY created_at DESC`
	return r.queryTodos(ctx, q, userID)
}

func (r *TodoRepo) queryTodos(ctx context.Context, q string, args ...any) ([]model.Todo, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Todo
	for rows.Next() {
		td, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *td)
	}
	return out, rows.Err()
}

// GetByIDAndUserID selects a single todo matching both predicates.
func (r *TodoRepo) GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*model.Todo, error) {
	const q = `SELECT ` + todoCols + ` FROM todos WHERE id=$1 AND user_id=$2`
	td, err := scanTodo(r.db.Pool.QueryRow(ctx, q, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	return td, err
}

// UpdateByIDAndUserID runs a conditional update filtered by id AND user_id;
// the affected-row count substitutes for an existence check, then the row is
// re-read. The write itself never races an ownership probe.
func (r *TodoRepo) UpdateByIDAndUserID(ctx context.Context, id, userID uuid.UUID, upd model.UpdateTodo) (*model.Todo, error) {
	set := make([]string, 0, 3)
	args := []any{id, userID}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if len(set) == 0 {
		return r.GetByIDAndUserID(ctx, id, userID)
	}
	set = append(set, "updated_at=now()")

	q := `UPDATE todos SET ` + strings.Join(set, ", ") + ` WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, errs.ErrNotFound
	}
	return r.GetByIDAndUserID(ctx, id, userID)
}

// DeleteByIDAndUserID runs a conditional delete filtered by id AND user_id.
func (r *TodoRepo) DeleteByIDAndUserID(ctx context.Context, id, userID uuid.UUID) error {
	const q = `DELETE FROM todos WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
