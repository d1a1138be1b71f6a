package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/taskboard/internal/errs"
	"github.com/avolkov/taskboard/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func todoRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "title", "description", "status", "user_id", "created_at", "updated_at"})
}

func TestTodoRepo_Create_OK_and_FKViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	ctx := context.Background()

	td := &model.Todo{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       "t",
		Description: "d",
		Status:      model.StatusPending,
		UserID:      uuid.Must(uuid.NewV4()),
	}

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO todos \(id, title, description, status, user_id\) VALUES \(\$1, \$2, \$3, \$4, \$5\) RETURNING created_at, updated_at`).
		WithArgs(td.ID, td.Title, td.Description, td.Status, td.UserID).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	require.NoError(t, r.Create(ctx, td))
	require.Equal(t, now, td.CreatedAt)

	// owner id does not reference a real user
	mock.ExpectQuery(`INSERT INTO todos \(id, title, description, status, user_id\) VALUES \(\$1, \$2, \$3, \$4, \$5\) RETURNING created_at, updated_at`).
		WithArgs(td.ID, td.Title, td.Description, td.Status, td.UserID).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	err := r.Create(ctx, td)
	require.ErrorIs(t, err, errs.ErrInvalidReference)
}

func TestTodoRepo_GetByIDAndUserID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, title, description, status, user_id, created_at, updated_at FROM todos WHERE id=\$1 AND user_id=\$2`).
		WithArgs(id, owner).
		WillReturnRows(todoRows().AddRow(id, "t", "d", model.StatusPending, owner, time.Now(), time.Now()))
	td, err := r.GetByIDAndUserID(ctx, id, owner)
	require.NoError(t, err)
	require.Equal(t, id, td.ID)
	require.Equal(t, owner, td.UserID)

	// zero rows covers both "doesn't exist" and "exists but not yours"
	mock.ExpectQuery(`SELECT id, title, description, status, user_id, created_at, updated_at FROM todos WHERE id=\$1 AND user_id=\$2`).
		WithArgs(id, owner).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByIDAndUserID(ctx, id, owner)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTodoRepo_GetByUserID_NewestFirst(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())
	a := uuid.Must(uuid.NewV4())
	b := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, title, description, status, user_id, created_at, updated_at FROM todos WHERE user_id=\$1 ORDER BY created_at DESC`).
		WithArgs(owner).
		WillReturnRows(todoRows().
			AddRow(a, "newer", "", model.StatusPending, owner, time.Now(), time.Now()).
			AddRow(b, "older", "", model.StatusDone, owner, time.Now().Add(-time.Hour), time.Now()))
	out, err := r.GetByUserID(ctx, owner)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, a, out[0].ID)
	require.Equal(t, b, out[1].ID)
}

func TestTodoRepo_UpdateByIDAndUserID_WriteThenReread(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())

	title := "new title"
	status := model.StatusDone

	mock.ExpectExec(`UPDATE todos SET title=\$3, status=\$4, updated_at=now\(\) WHERE id=\$1 AND user_id=\$2`).
		WithArgs(id, owner, title, status).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`SELECT id, title, description, status, user_id, created_at, updated_at FROM todos WHERE id=\$1 AND user_id=\$2`).
		WithArgs(id, owner).
		WillReturnRows(todoRows().AddRow(id, title, "d", status, owner, time.Now(), time.Now()))

	td, err := r.UpdateByIDAndUserID(ctx, id, owner, model.UpdateTodo{Title: &title, Status: &status})
	require.NoError(t, err)
	require.Equal(t, title, td.Title)
	require.Equal(t, status, td.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepo_UpdateByIDAndUserID_ZeroAffectedIsNotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())

	title := "x"
	mock.ExpectExec(`UPDATE todos SET title=\$3, updated_at=now\(\) WHERE id=\$1 AND user_id=\$2`).
		WithArgs(id, owner, title).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := r.UpdateByIDAndUserID(ctx, id, owner, model.UpdateTodo{Title: &title})
	require.ErrorIs(t, err, errs.ErrNotFound)
	// no re-read after a miss
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepo_UpdateByIDAndUserID_EmptyPatchIsRead(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, title, description, status, user_id, created_at, updated_at FROM todos WHERE id=\$1 AND user_id=\$2`).
		WithArgs(id, owner).
		WillReturnRows(todoRows().AddRow(id, "t", "d", model.StatusPending, owner, time.Now(), time.Now()))

	td, err := r.UpdateByIDAndUserID(ctx, id, owner, model.UpdateTodo{})
	require.NoError(t, err)
	require.Equal(t, id, td.ID)
}

func TestTodoRepo_DeleteByIDAndUserID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`DELETE FROM todos WHERE id=\$1 AND user_id=\$2`).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.DeleteByIDAndUserID(ctx, id, owner))

	mock.ExpectExec(`DELETE FROM todos WHERE id=\$1 AND user_id=\$2`).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	err := r.DeleteByIDAndUserID(ctx, id, owner)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
