package restserver

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/taskboard/internal/token"
)

// RequestLogger returns middleware for structured request logging.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// metadata only, never payloads
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("client", c.ClientIP()),
		)
	}
}

// Recovery returns middleware that recovers from panics and answers 500.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			}
		}()
		c.Next()
	}
}

// RequireAuth verifies the bearer credential (Authorization header first,
// session cookie as fallback) and attaches the resolved identity to the
// request. Without a verifiable token the chain stops with 401.
func RequireAuth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := token.FromRequest(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		claims, err := issuer.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		uid, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		setIdentity(c, Identity{ID: uid, Email: claims.Email, Role: claims.Role})
		c.Next()
	}
}

// RequireAdmin stops the chain with 403 unless the caller is an admin.
// It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "user not authenticated"})
			return
		}
		if !ident.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin role required"})
			return
		}
		c.Next()
	}
}

// RequireOwnerOrAdmin passes admins through; everyone else must own the
// resource, i.e. the named path parameter must equal the caller's id.
// A missing parameter fails closed with 403.
func RequireOwnerOrAdmin(param string) gin.HandlerFunc {
	if param == "" {
		param = "id"
	}
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "user not authenticated"})
			return
		}
		if ident.IsAdmin() {
			c.Next()
			return
		}
		owner := c.Param(param)
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "resource owner parameter missing"})
			return
		}
		if owner != ident.ID.String() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "you can only access your own resources"})
			return
		}
		c.Next()
	}
}
