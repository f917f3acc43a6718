package middleware

import (
	"net/http"
	"strings"
	"time"

	"villa/internal/shared/utils/response"
	"villa/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextAdminKey     = "admin_username"
	ContextRequestIDKey = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// SessionVerifier validates an admin session token and returns the username it carries
type SessionVerifier interface {
	VerifySession(token string) (string, error)
}

// RequireAdmin accepts the session cookie or an "Authorization: Bearer" header
func RequireAdmin(verifier SessionVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(cookieName)
		}
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Admin session required", nil)
			return
		}

		username, err := verifier.VerifySession(token)
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), "invalid or expired session", c.ClientIP())
			response.Error(c, http.StatusUnauthorized, "Invalid or expired session", nil)
			return
		}

		c.Set(ContextAdminKey, username)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequestID propagates or generates X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger logs every request once it has been served
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		reqLogger := l
		if id := c.GetString(ContextRequestIDKey); id != "" {
			reqLogger = l.WithRequestID(id)
		}
		reqLogger.LogHTTPRequest(c, time.Since(start))
	}
}
