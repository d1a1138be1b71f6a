// Package service contains application services for auth, users and todos.
package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/avolkov/taskboard/internal/crypto"
	"github.com/avolkov/taskboard/internal/errs"
	"github.com/avolkov/taskboard/internal/model"
	"github.com/avolkov/taskboard/internal/repository"
)

// UserService defines CRUD operations over user accounts.
type UserService interface {
	// GetAll returns every user (admin view, no pagination).
	GetAll(ctx context.Context) ([]model.User, error)
	// GetByID returns a single user.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// Create hashes the password and persists a new user.
	Create(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)
	// Update applies partial changes, re-hashing the password when present.
	Update(ctx context.Context, id uuid.UUID, upd model.UpdateUser) (*model.User, error)
	// Delete removes a user and returns the deleted row.
	Delete(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type UserServiceImpl struct {
	users repository.UserRepository
}

// NewUserService constructs UserService with required dependencies.
func NewUserService(users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users}
}

// GetAll returns every user.
func (s *UserServiceImpl) GetAll(ctx context.Context) ([]model.User, error) {
	return s.users.GetAll(ctx)
}

// GetByID returns a single user or ErrNotFound.
func (s *UserServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create hashes the password and inserts the user. An email collision is
// detected via the uniqueness constraint, never a pre-check, so there is no
// check-then-act race.
func (s *UserServiceImpl) Create(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errs.ErrInvalidInput
	}
	if role == "" {
		role = model.RoleClient
	}
	if !role.Valid() {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies the non-nil fields. A changed password is re-hashed here so
// plaintext never reaches the repository.
func (s *UserServiceImpl) Update(ctx context.Context, id uuid.UUID, upd model.UpdateUser) (*model.User, error) {
	if id == uuid.Nil {
		return nil, errs.ErrInvalidInput
	}

	var patch model.UserPatch
	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, errs.ErrInvalidInput
		}
		patch.Name = upd.Name
	}
	if upd.Email != nil {
		if *upd.Email == "" {
			return nil, errs.ErrInvalidInput
		}
		patch.Email = upd.Email
	}
	if upd.Role != nil {
		if !upd.Role.Valid() {
			return nil, errs.ErrInvalidInput
		}
		patch.Role = upd.Role
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, errs.ErrInvalidInput
		}
		hash, err := pkgcrypto.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	return s.users.Update(ctx, id, patch)
}

// Delete removes a user or fails with ErrNotFound.
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, errs.ErrInvalidInput
	}
	return s.users.Delete(ctx, id)
}
