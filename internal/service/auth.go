package service

import (
	"context"

	pkgcrypto "github.com/avolkov/taskboard/internal/crypto"
	"github.com/avolkov/taskboard/internal/errs"
	"github.com/avolkov/taskboard/internal/limiter"
	"github.com/avolkov/taskboard/internal/model"
	"github.com/avolkov/taskboard/internal/repository"
	"github.com/avolkov/taskboard/internal/token"
)

// AuthService defines signup and login.
type AuthService interface {
	// SignUp registers a new account with the default CLIENT role.
	SignUp(ctx context.Context, name, email, password string) (*model.User, error)
	// Login applies rate-limiting, verifies credentials and issues a token.
	Login(ctx context.Context, email, password, ip string) (model.Token, *model.User, error)
}

type AuthServiceImpl struct {
	users  UserService
	repo   repository.UserRepository
	issuer *token.Issuer
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users UserService, repo repository.UserRepository, issuer *token.Issuer, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, repo: repo, issuer: issuer, lim: lim}
}

// SignUp delegates to the user service; an email conflict propagates as
// ErrAlreadyExists untouched.
func (s *AuthServiceImpl) SignUp(ctx context.Context, name, email, password string) (*model.User, error) {
	return s.users.Create(ctx, name, email, password, model.RoleClient)
}

// Login authenticates with rate limiting by (email, ip). A missing account
// and a wrong password return the same error so callers cannot enumerate
// registered emails.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (model.Token, *model.User, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Token{}, nil, err
	}
	if !allowed {
		return model.Token{}, nil, errs.ErrRateLimited
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Token{}, nil, errs.ErrRateLimited
		}
		return model.Token{}, nil, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	tok, err := s.issuer.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return model.Token{}, nil, err
	}
	return tok, u, nil
}
