package middleware

import (
	"log/slog"
	"net/http"

	"github.com/adilbekov/shopscout/internal/session"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// Auth validates the session cookie and sets the decoded "user" claim and
// "userID" in the gin context. An absent cookie and an invalid one produce
// the same 401 for the client; the log line tells them apart.
func Auth(sessions *session.Manager, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)
		if err != nil {
			logger.DebugContext(c.Request.Context(), "no session cookie")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		user, err := sessions.Verify(raw)
		if err != nil {
			logger.DebugContext(c.Request.Context(), "session token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, _ := user["id"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Next()
	}
}
