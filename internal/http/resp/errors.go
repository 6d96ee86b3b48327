package resp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"teamboard/internal/domain"
	"teamboard/internal/http/dto"
)

// Status maps a service error onto an HTTP status and response code.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrNoRecipients):
		return http.StatusNotFound, CodeNoRecipients
	case errors.Is(err, domain.ErrResolutionFailed):
		return http.StatusServiceUnavailable, CodeResolutionFailed
	case errors.Is(err, domain.ErrTableMissing):
		return http.StatusInternalServerError, CodeTableMissing
	case errors.Is(err, domain.ErrWriteFailed):
		return http.StatusInternalServerError, CodeWriteFailed
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

// Error writes err as an ErrorResponse and aborts the chain.
func Error(c *gin.Context, message string, err error) {
	status, code := Status(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:    code,
		Message: message,
		Details: domain.Detail(err),
	})
}

func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Code: CodeBadRequest, Message: message})
}
