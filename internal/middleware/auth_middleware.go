// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"parkreg-service/internal/pkg/response"
	"parkreg-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Auth validates the applicant session token and resolves the owner identity
// for user-scoped operations.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing session token", nil)
			return
		}

		sess, err := m.authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired session", nil)
			return
		}

		c.Set("session_token", sess.Token)
		c.Set("applicant_id", sess.ApplicantID)
		c.Set("registrant_type", sess.RegistrantType)

		c.Next()
	}
}

// AdminAuth validates an admin bearer token for privileged operations.
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.authService.VerifyAdminToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		if claims.Role != "admin" {
			response.Error(c, http.StatusForbidden, "insufficient permissions", nil)
			return
		}

		c.Set("admin_id", claims.AdminID)

		c.Next()
	}
}

// extractToken pulls the credential from the Authorization header, falling
// back to the session cookie the server-rendered pages use.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("session_id"); err == nil {
		return cookie
	}
	return ""
}
