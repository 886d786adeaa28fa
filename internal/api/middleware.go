package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Header carrying the coach review secret. A Bearer token in the standard
// Authorization header is accepted as an alternative.
const coachKeyHeader = "x-coach-key"

// CoachKeyMiddleware creates a Gin middleware gating the review endpoints
// behind the shared coach secret. A server with no secret configured fails
// every gated request with a 500 so the misconfiguration is distinguishable
// from a caller with a bad key.
func CoachKeyMiddleware(coachKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if coachKey == "" {
			abortWithError(c, http.StatusInternalServerError, "REVIEW_COACH_KEY is not configured on the server.")
			return
		}

		providedKey := c.GetHeader(coachKeyHeader)
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			}
		}

		if providedKey == "" || subtle.ConstantTimeCompare([]byte(providedKey), []byte(coachKey)) != 1 {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized coach key.")
			return
		}

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
