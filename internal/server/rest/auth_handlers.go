package restserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/taskboard/internal/errs"
	"github.com/avolkov/taskboard/internal/token"
)

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleSignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email and password are required"})
		return
	}

	u, err := s.auth.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	tok, _, err := s.auth.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		// bad credentials answer 400, identically for unknown email and
		// wrong password
		if errors.Is(err, errs.ErrUnauthorized) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid credentials"})
			return
		}
		writeError(c, err)
		return
	}

	// httpOnly session cookie; SameSite=Lax so top-level navigation from the
	// web client keeps the session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(token.CookieName, tok.AccessToken,
		int(time.Until(tok.ExpiresAt).Seconds()), "/", "", s.secureCookies, true)

	c.JSON(http.StatusOK, gin.H{"access_token": tok.AccessToken})
}
