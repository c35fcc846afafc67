// internal/pkg/response/response.go
package response

import (
	"net/http"

	xerrors "parkreg-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format. The registration UI
// switches on Status and shows Message verbatim.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error) {
	// CRITICAL: Abort FIRST before writing response
	c.Abort()

	resp := Response{
		Status:  "error",
		Message: message,
	}

	if err != nil {
		resp.Error = err.Error()
	}

	c.JSON(code, resp)
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// FromError maps an application error to an HTTP status: 400 for
// validation and duplicate errors, 404 for not-found (kept generic so the
// response never reveals whether an id exists), 401 for auth failures and
// 500 otherwise. Persistence details are only echoed in development mode.
func FromError(c *gin.Context, err error, notFoundMessage string, verbose bool) {
	switch {
	case xerrors.Is(err, xerrors.ErrInvalidInput),
		xerrors.Is(err, xerrors.ErrDuplicateRegistration),
		xerrors.Is(err, xerrors.ErrDuplicateDiskNumber):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case xerrors.Is(err, xerrors.ErrNotFound):
		NotFound(c, notFoundMessage)
	case xerrors.Is(err, xerrors.ErrUnauthorized), xerrors.Is(err, xerrors.ErrSessionExpired):
		Unauthorized(c, "authentication required")
	default:
		if verbose {
			Error(c, http.StatusInternalServerError, "operation failed", err)
			return
		}
		Error(c, http.StatusInternalServerError, "operation failed", nil)
	}
}
