// Package token issues and verifies the signed bearer credential used for
// session auth. Tokens are HS256 JWTs carrying {sub, email, role}.
package token

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/avolkov/taskboard/internal/errs"
	"github.com/avolkov/taskboard/internal/model"
)

// CookieName is the session cookie carrying the access token.
const CookieName = "access_token"

// Claims is the verified identity carried by a token.
type Claims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.FromString(c.Subject)
}

// Issuer signs and verifies access tokens with a shared HS256 key.
type Issuer struct {
	signKey []byte
	ttl     time.Duration
}

// NewIssuer constructs an Issuer. Tokens expire ttl after issuance; there is
// no server-side revocation, so a token stays valid until then.
func NewIssuer(signKey []byte, ttl time.Duration) *Issuer {
	return &Issuer{signKey: signKey, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue creates a signed token embedding the user's id, email and role.
func (i *Issuer) Issue(userID uuid.UUID, email string, role model.Role) (model.Token, error) {
	now := time.Now()
	exp := now.Add(i.ttl)
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.signKey)
	if err != nil {
		return model.Token{}, err
	}
	return model.Token{AccessToken: signed, ExpiresAt: exp}, nil
}

// Verify parses and validates a token, returning its claims.
// Any failure (bad signature, expiry, wrong algorithm) maps to ErrUnauthorized.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errs.ErrUnauthorized
	}

	v := jwt.NewValidator(jwt.WithLeeway(30 * time.Second))
	if err := v.Validate(&claims); err != nil {
		return nil, errs.ErrUnauthorized
	}
	return &claims, nil
}

// FromRequest extracts the raw token from an HTTP request: the Authorization
// bearer header wins; the session cookie is the fallback.
func FromRequest(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1], true
		}
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}
