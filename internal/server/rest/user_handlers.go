package restserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/avolkov/taskboard/internal/errs"
	"github.com/avolkov/taskboard/internal/model"
)

type updateUserRequest struct {
	Name     *string     `json:"name"`
	Email    *string     `json:"email"`
	Password *string     `json:"password"`
	Role     *model.Role `json:"role"`
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetMe(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		writeError(c, errs.ErrUnauthorized)
		return
	}
	u, err := s.users.GetByID(c.Request.Context(), ident.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *Server) handleGetUser(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		writeError(c, errs.ErrNotFound)
		return
	}
	u, err := s.users.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		writeError(c, errs.ErrNotFound)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	// only admins may change roles
	if req.Role != nil {
		if ident, ok := IdentityFrom(c); !ok || !ident.IsAdmin() {
			writeError(c, errs.ErrForbidden)
			return
		}
	}

	u, err := s.users.Update(c.Request.Context(), id, model.UpdateUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		writeError(c, errs.ErrNotFound)
		return
	}
	u, err := s.users.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}
