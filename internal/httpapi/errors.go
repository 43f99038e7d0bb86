package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"feedbackManagement/internal/apperr"
)

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFoundOrForbidden), errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"detail": ...}. Unclassified errors are logged and hidden.
func (h *handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("request_id", c.GetString(ctxRequestID)).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"detail": "Internal server error"})
		return
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(status, gin.H{"detail": apperr.Detail(err)})
}

// bind decodes the JSON body into dst, answering 422 on failure.
func (h *handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := make([]fieldError, 0, len(ve))
			for _, fe := range ve {
				out = append(out, fieldError{Field: fe.Field(), Rule: fe.Tag()})
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": out})
			return false
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return false
	}
	return true
}

// pathID parses a positive integer path parameter, answering 422 when it is not one.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid " + name})
		return 0, false
	}
	return id, true
}
