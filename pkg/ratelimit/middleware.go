package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"villa/internal/shared/utils/response"
	"villa/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware classifies each route and enforces its limit.
// A Redis failure lets the request through.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.Request.Method, c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			logger.GetDefault().ErrorWithContext(c.Request.Context(), "Rate limit check failed", err, map[string]interface{}{
				"ip":   clientIP,
				"type": string(limitType),
			})
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded", map[string]interface{}{
				"limit":      result.Limit,
				"reset_time": result.ResetTime,
			})
			return
		}

		c.Next()
	}
}

func getRateLimitType(method, path string) RateLimitType {
	switch {
	case path == "/health", path == "/ping", path == "/status", path == "/metrics":
		return RateLimitTypeHealth

	case strings.Contains(path, "/admin/") || strings.HasSuffix(path, "/admin"):
		return RateLimitTypeAdmin

	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth

	// the public booking form
	case method == http.MethodPost && strings.HasSuffix(path, "/bookings"):
		return RateLimitTypeBooking

	case strings.Contains(path, "/availability"),
		strings.HasSuffix(path, "/content"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// extracts real client IP
func getClientIP(c *gin.Context) string {
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return ip
}
