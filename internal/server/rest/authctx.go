package restserver

import (
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/avolkov/taskboard/internal/model"
)

const identityKey = "taskboard.identity"

// Identity is the authenticated caller resolved from a verified token.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  model.Role
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (i Identity) IsAdmin() bool { return i.Role == model.RoleAdmin }

func setIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom fetches the authenticated identity from the request context.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
