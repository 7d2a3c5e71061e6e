package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobsentry/jobsentry-api/internal/services"
)

// ContextUserKey is where RequireAPIKey stores the authenticated user.
const ContextUserKey = "currentUser"

// RequireAPIKey authenticates requests with "Authorization: Bearer
// <api key>" and puts the owning user on the context.
func RequireAPIKey(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}
		key := strings.TrimPrefix(header, "Bearer ")

		user, err := users.GetUserByAPIKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireWebhookSecret guards the N8N callback endpoints with a shared
// secret in the X-Webhook-Secret header. Constant-time compare.
func RequireWebhookSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Webhook-Secret")
		if provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook secret"})
			return
		}
		c.Next()
	}
}
