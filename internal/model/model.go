// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Role controls what a user may do beyond their own rows.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool { return r == RoleClient || r == RoleAdmin }

// Status is the workflow state of a todo.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusDone
}

// User represents an account. PasswordHash is bcrypt output and must never
// leave the service layer in a response body.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string // unique
	PasswordHash string
	Role         Role // defaults to CLIENT
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Todo is a single task owned by exactly one user.
type Todo struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      Status    // defaults to PENDING
	UserID      uuid.UUID // FK -> users.id
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Token is an issued access credential with its expiry (for diagnostics and
// the session cookie max-age).
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// UpdateUser carries partial user changes; nil fields are left untouched.
type UpdateUser struct {
	Name     *string
	Email    *string
	Password *string // plaintext; hashed by the service before persisting
	Role     *Role
}

// UserPatch is the repository-level form of UpdateUser: the password has
// already been hashed.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
}

// UpdateTodo carries partial todo changes; nil fields are left untouched.
type UpdateTodo struct {
	Title       *string
	Description *string
	Status      *Status
}
