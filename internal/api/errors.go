package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/julianstephens/tracklit/internal/errors"
)

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes {"error": ...}. Storage faults are reported without
// their driver detail, which only goes to the log.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	abortWithError(c, apperrors.NewValidation("", msg))
}
