package restserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/avolkov/taskboard/internal/errs"
	"github.com/avolkov/taskboard/internal/model"
)

type createTodoRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
}

type updateTodoRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *model.Status `json:"status"`
}

func (s *Server) handleListTodos(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		writeError(c, errs.ErrUnauthorized)
		return
	}

	var (
		todos []model.Todo
		err   error
	)
	if ident.IsAdmin() && c.Query("all") == "true" {
		todos, err = s.todos.GetAll(c.Request.Context())
	} else {
		todos, err = s.todos.GetByUserID(c.Request.Context(), ident.ID)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]todoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, toTodoResponse(&todos[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateTodo(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		writeError(c, errs.ErrUnauthorized)
		return
	}
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required"})
		return
	}

	// the owner is always the session user; a userId in the body is ignored
	td, err := s.todos.Create(c.Request.Context(), req.Title, req.Description, req.Status, ident.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTodoResponse(td))
}

func (s *Server) handleGetTodo(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		writeError(c, errs.ErrUnauthorized)
		return
	}
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		writeError(c, errs.ErrNotFound)
		return
	}
	td, err := s.todos.GetByIDAndUserID(c.Request.Context(), id, ident.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTodoResponse(td))
}

func (s *Server) handleUpdateTodo(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		writeError(c, errs.ErrUnauthorized)
		return
	}
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		writeError(c, errs.ErrNotFound)
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	td, err := s.todos.UpdateByIDAndUserID(c.Request.Context(), id, ident.ID, model.UpdateTodo{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTodoResponse(td))
}

func (s *Server) handleDeleteTodo(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		writeError(c, errs.ErrUnauthorized)
		return
	}
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		writeError(c, errs.ErrNotFound)
		return
	}
	if err := s.todos.DeleteByIDAndUserID(c.Request.Context(), id, ident.ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "todo deleted"})
}
