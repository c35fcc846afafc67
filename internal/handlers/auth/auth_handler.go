// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"parkreg-service/internal/middleware"
	"parkreg-service/internal/pkg/response"
	authsvc "parkreg-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *authsvc.Service
	verbose     bool
}

func NewAuthHandler(authService *authsvc.Service, verbose bool) *AuthHandler {
	return &AuthHandler{authService: authService, verbose: verbose}
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Login starts an applicant session. Identity verification proper lives in
// the campus SSO flow; this endpoint trades a known applicant email for a
// session token the registration pages use.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "a valid email is required", nil)
		return
	}

	sess, a, err := h.authService.Login(c.Request.Context(), req.Email)
	if err != nil {
		response.FromError(c, err, "applicant not found", h.verbose)
		return
	}

	c.SetCookie("session_id", sess.Token, int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds()), "/", "", false, true)
	response.Success(c, http.StatusOK, "logged in", gin.H{
		"token":     sess.Token,
		"applicant": a,
	})
}

// Logout destroys the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetSessionToken(c)
	if token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			response.FromError(c, err, "session not found", h.verbose)
			return
		}
	}

	c.SetCookie("session_id", "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, "logged out", nil)
}

// Me returns the applicant behind the current session, for the registration
// pages' account header.
func (h *AuthHandler) Me(c *gin.Context) {
	applicantID := middleware.MustGetApplicantID(c)

	a, err := h.authService.CurrentApplicant(c.Request.Context(), applicantID)
	if err != nil {
		response.FromError(c, err, "applicant not found", h.verbose)
		return
	}

	response.Success(c, http.StatusOK, "applicant retrieved", gin.H{"applicant": a})
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin verifies admin credentials and returns a bearer token.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "email and password are required", nil)
		return
	}

	token, err := h.authService.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err, "admin not found", h.verbose)
		return
	}

	response.Success(c, http.StatusOK, "logged in", gin.H{"token": token})
}
