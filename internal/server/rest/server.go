// Package restserver exposes the taskboard REST API handlers.
package restserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/taskboard/internal/model"
	"github.com/avolkov/taskboard/internal/service"
	"github.com/avolkov/taskboard/internal/token"
)

// Server wires services into HTTP handlers.
type Server struct {
	log    *zap.Logger
	auth   service.AuthService
	users  service.UserService
	todos  service.TodoService
	issuer *token.Issuer

	// secureCookies marks the session cookie Secure; enabled in release mode.
	secureCookies bool
}

// New constructs a Server with injected services.
func New(log *zap.Logger, auth service.AuthService, users service.UserService, todos service.TodoService, issuer *token.Issuer, secureCookies bool) *Server {
	return &Server{log: log, auth: auth, users: users, todos: todos, issuer: issuer, secureCookies: secureCookies}
}

// Router builds the gin engine with middleware and all routes bound to their
// guard chains. Guards run in declared order; the first failure aborts.
func (s *Server) Router(corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(s.log), RequestLogger(s.log))

	if len(corsOrigins) > 0 {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = corsOrigins
		cc.AllowCredentials = true
		cc.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
		cc.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
		r.Use(cors.New(cc))
	}

	r.GET("/health", s.handleHealth)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", s.handleSignUp)
		auth.POST("/login", s.handleLogin)
	}

	users := r.Group("/users", RequireAuth(s.issuer))
	{
		users.GET("", RequireAdmin(), s.handleListUsers)
		users.GET("/me", s.handleGetMe)
		users.GET("/:id", RequireOwnerOrAdmin("id"), s.handleGetUser)
		users.PATCH("/:id", RequireOwnerOrAdmin("id"), s.handleUpdateUser)
		users.DELETE("/:id", RequireOwnerOrAdmin("id"), s.handleDeleteUser)
	}

	todos := r.Group("/todos", RequireAuth(s.issuer))
	{
		todos.GET("", s.handleListTodos)
		todos.POST("", s.handleCreateTodo)
		todos.GET("/:id", s.handleGetTodo)
		todos.PATCH("/:id", s.handleUpdateTodo)
		todos.DELETE("/:id", s.handleDeleteTodo)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "taskboard-api"})
}

// userResponse is the client-visible shape of a user. The password hash
// stays server-side.
type userResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type todoResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
	UserID      string       `json:"userId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func toTodoResponse(td *model.Todo) todoResponse {
	return todoResponse{
		ID:          td.ID.String(),
		Title:       td.Title,
		Description: td.Description,
		Status:      td.Status,
		UserID:      td.UserID.String(),
		CreatedAt:   td.CreatedAt,
		UpdatedAt:   td.UpdatedAt,
	}
}
