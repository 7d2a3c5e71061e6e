package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobsentry/jobsentry-api/internal/dtos"
	"github.com/jobsentry/jobsentry-api/internal/middleware"
	"github.com/jobsentry/jobsentry-api/internal/models"
	"github.com/jobsentry/jobsentry-api/internal/services"
)

type UserHandler struct {
	UserService *services.UserService
}

func NewUserHandler(u *services.UserService) *UserHandler {
	return &UserHandler{UserService: u}
}

// currentUser pulls the authenticated user the middleware stored.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.ContextUserKey).(*models.User)
}

// Register is the public POST /users endpoint. The response is the only
// place the API key ever appears.
func (h *UserHandler) Register(c *gin.Context) {
	var req dtos.UserCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	user, key, err := h.UserService.CreateUser(&req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create user: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dtos.UserCreationResponse{
		ID:     user.ID,
		Email:  user.Email,
		APIKey: key,
	})
}

func (h *UserHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (h *UserHandler) DeleteMe(c *gin.Context) {
	user := currentUser(c)
	if err := h.UserService.DeleteUser(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers backs the ops-only /internal/users route (webhook-secret
// guarded, not user-facing).
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.UserService.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}
