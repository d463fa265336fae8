package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey namespaces values this package stores in request contexts.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	roleKey      = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx reads the user ID stored by AuthMiddleware in a standard context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// IsAdmin reports whether the authenticated caller carries the admin role.
func IsAdmin(c *gin.Context) bool {
	role, _ := c.Request.Context().Value(roleKey).(string)
	return role == adminRole
}

// WithUserID stores a user ID the same way AuthMiddleware does. CLI runs use it
// so service logs carry the user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
