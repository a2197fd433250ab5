package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

var errNoToken = errors.New("no token provided")

// Client-facing messages.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgUsernameTaken      = "Username already exists"
	msgNoToken            = "No token provided"
	msgInvalidToken       = "Invalid token"
	msgInvalidRequest     = "Invalid request"
	msgInternal           = "Internal server error"
)

// statusFor maps a service error to the HTTP status and message sent to the
// client. Unknown errors are internal.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, common.ErrUsernameTaken):
		return http.StatusBadRequest, msgUsernameTaken
	case errors.Is(err, errNoToken):
		return http.StatusUnauthorized, msgNoToken
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, msgInvalidRequest
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (h *handler) writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
