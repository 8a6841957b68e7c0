package response

import (
	"errors"
	"log/slog"
	"net/http"

	"talently/internal/domain"

	"github.com/gin-gonic/gin"
)

const internalMessage = "An unexpected error occurred"

// ShowDetails controls whether 500 responses carry the underlying error text.
// It is switched on in development only.
var ShowDetails = false

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
		"code":    code,
		"details": details,
	})
}

// Fail writes err using the status of its domain.ErrorKind. Untyped errors
// are logged and answered with a generic 500.
func Fail(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "unhandled error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		if ShowDetails {
			ErrorWithDetails(c, http.StatusInternalServerError, "INTERNAL_ERROR", internalMessage, err.Error())
			return
		}
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", internalMessage)
		return
	}

	status := StatusOf(de.Kind)
	if len(de.Details) > 0 {
		ErrorWithDetails(c, status, de.Code, de.Message, de.Details)
		return
	}
	Error(c, status, de.Code, de.Message)
}

func StatusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
