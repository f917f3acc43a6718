package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with the service's domain log helpers
type Logger struct {
	*slog.Logger
}

// New builds a logger for the given level. Gin debug mode gets the text handler, anything else JSON.
func New(levelStr string) *Logger {
	level := getLogLevel(levelStr)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler).With(slog.String("service", "villa")),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("route", c.FullPath()),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogBookingCreated logs when a booking request is stored
func (l *Logger) LogBookingCreated(ctx context.Context, bookingID, checkIn, checkOut string) {
	l.Logger.InfoContext(ctx,
		"Booking Created",
		slog.String("booking_id", bookingID),
		slog.String("check_in", checkIn),
		slog.String("check_out", checkOut),
	)
}

// LogBookingStatusChanged logs an admin decision on a booking
func (l *Logger) LogBookingStatusChanged(ctx context.Context, bookingID, from, to string) {
	l.Logger.InfoContext(ctx,
		"Booking Status Changed",
		slog.String("booking_id", bookingID),
		slog.String("from", from),
		slog.String("to", to),
	)
}

// LogBookingDeleted logs when a booking is removed
func (l *Logger) LogBookingDeleted(ctx context.Context, bookingID string, removed bool) {
	l.Logger.InfoContext(ctx,
		"Booking Deleted",
		slog.String("booking_id", bookingID),
		slog.Bool("removed", removed),
	)
}

// LogNotificationFailed logs a notification that could not be delivered
func (l *Logger) LogNotificationFailed(ctx context.Context, kind, recipient string, err error) {
	l.Logger.ErrorContext(ctx,
		"Notification Failed",
		slog.String("kind", kind),
		slog.String("recipient", recipient),
		slog.String("error", err.Error()),
	)
}

// Security logging methods

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, username, ip string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("username", username),
		slog.String("ip", ip),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// DebugWithContext logs a debug message with context
func (l *Logger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.DebugContext(ctx, msg, args...)
}

var defaultLogger = New(os.Getenv("LOG_LEVEL"))

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
