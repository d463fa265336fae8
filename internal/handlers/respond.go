package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/SscSPs/pocket_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.OK(status, message, data))
}

// respondError maps err onto the envelope. Client errors carry the error text,
// server errors only the generic message.
func respondError(c *gin.Context, err error, message string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(message, slog.String("error", err.Error()))
		c.JSON(status, dto.Fail(status, message))
		return
	}
	logger.Warn(message, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, dto.Fail(status, err.Error()))
}

func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, "Invalid request format: "+err.Error()))
}

// requireUserID fetches the authenticated user or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail(http.StatusUnauthorized, "Unauthorized"))
		return "", false
	}
	return userID, true
}
