package handlers

import (
	"net/http"

	"fal-engine/web/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidRequest = "missing user_id or symbols"
	msgInternalError  = "internal_error"
)

// respondWithError logs the technical error and returns a user-friendly message
func respondWithError(c *gin.Context, statusCode int, technicalError error, userMessage string, logger *zap.Logger, fields ...zap.Field) {
	if logger != nil {
		fields = append(fields, zap.Error(technicalError))
		if id, ok := c.Get("requestID"); ok {
			fields = append(fields, zap.Any("request_id", id))
		}
		logger.Error("Request failed", fields...)
	}

	c.JSON(statusCode, types.ErrorResponse{Error: userMessage})
}

// respondWithClientError returns a client error (no logging needed for validation errors)
func respondWithClientError(c *gin.Context, statusCode int, userMessage string) {
	c.JSON(statusCode, types.ErrorResponse{Error: userMessage})
}

// RecoveryHandler turns a handler panic into the generic internal error body.
func RecoveryHandler(logger *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic",
			zap.Any("panic", recovered),
			zap.String("path", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: msgInternalError})
	}
}
