package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JoelCyril/Pulso.ai/internal/service"
)

// RequestIDMiddleware ensures every request has a correlation/request ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Next()
	}
}

// AuthMiddleware resolves the bearer token to a user and stores it in
// the request context. Unauthenticated requests are rejected here so
// handlers can rely on "user" being present.
func AuthMiddleware(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		user, err := service.Authenticate(c.Request.Context(), app.Store(), token)
		if err != nil {
			HandleError(c, app.Logger(), err, 401, "Authentication required")
			c.Abort()
			return
		}
		c.Set("user", user)
		c.Next()
	}
}
