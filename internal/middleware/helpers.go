// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

// GetApplicantID gets the authenticated applicant id from context
func GetApplicantID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("applicant_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// MustGetApplicantID gets the applicant id from context or panics
func MustGetApplicantID(c *gin.Context) int64 {
	id, exists := GetApplicantID(c)
	if !exists {
		panic("applicant_id not found in context")
	}
	return id
}

// GetAdminID gets the authenticated admin id from context
func GetAdminID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("admin_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// GetSessionToken gets the raw session token from context
func GetSessionToken(c *gin.Context) string {
	v, exists := c.Get("session_token")
	if !exists {
		return ""
	}
	token, _ := v.(string)
	return token
}
