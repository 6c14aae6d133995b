package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/validate"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	Auth  *service.AuthService
	Tasks *service.TaskService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		Auth:  service.NewAuthService(repository.NewUserRepository(db)),
		Tasks: service.NewTaskService(repository.NewTaskRepository(db)),
	}
}

// NewHandlerWithStores wires the handler over explicit stores. Tests use
// this with in-memory implementations.
func NewHandlerWithStores(users service.UserStore, tasks service.TaskStore) *Handler {
	return &Handler{
		Auth:  service.NewAuthService(users),
		Tasks: service.NewTaskService(tasks),
	}
}

// getUserID extracts the authenticated user id placed by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	uid, ok := uidVal.(int64)
	return uid, ok
}

// writeError maps service errors onto the HTTP surface. Anything not in
// the taxonomy becomes a generic 500 with no internals leaked.
func writeError(c *gin.Context, err error) {
	var vErr *validate.Error
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": vErr.Fields})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
