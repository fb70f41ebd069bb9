package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
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

// WithVenueID adds venue ID to logger context
func (l *Logger) WithVenueID(venueID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("venue_id", venueID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Business logic logging methods

// LogDayEvaluated logs a completed availability evaluation
func (l *Logger) LogDayEvaluated(ctx context.Context, venueID, date, policyHash string, slots int) {
	l.Logger.DebugContext(ctx,
		"Availability Evaluated",
		slog.String("venue_id", venueID),
		slog.String("date", date),
		slog.String("policy_hash", policyHash),
		slog.Int("slots", slots),
	)
}

// LogHoldCreated logs when a hold is created
func (l *Logger) LogHoldCreated(ctx context.Context, holdID, venueID string, expiresAt time.Time) {
	l.Logger.InfoContext(ctx,
		"Hold Created",
		slog.String("hold_id", holdID),
		slog.String("venue_id", venueID),
		slog.Time("expires_at", expiresAt),
	)
}

// LogHoldCancelled logs when a hold is cancelled
func (l *Logger) LogHoldCancelled(ctx context.Context, holdID string) {
	l.Logger.InfoContext(ctx,
		"Hold Cancelled",
		slog.String("hold_id", holdID),
	)
}

// LogAssignmentCommitted logs a committed table assignment
func (l *Logger) LogAssignmentCommitted(ctx context.Context, reservationID string, tableIDs []string) {
	l.Logger.InfoContext(ctx,
		"Table Assignment Committed",
		slog.String("reservation_id", reservationID),
		slog.Any("table_ids", tableIDs),
	)
}

// LogAssignmentConflict logs a commit-time conflict abort
func (l *Logger) LogAssignmentConflict(ctx context.Context, reservationID string, tableIDs []string) {
	l.Logger.WarnContext(ctx,
		"Table Assignment Conflict",
		slog.String("reservation_id", reservationID),
		slog.Any("table_ids", tableIDs),
	)
}

// LogSweepPass logs one expiry sweep pass
func (l *Logger) LogSweepPass(ctx context.Context, expired int64, duration time.Duration) {
	l.Logger.InfoContext(ctx,
		"Hold Sweep Pass",
		slog.Int64("expired", expired),
		slog.Duration("duration", duration),
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

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
