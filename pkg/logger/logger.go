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
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
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

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("user_id", userID)),
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

// LogPackageCreated logs when a super package is created
func (l *Logger) LogPackageCreated(ctx context.Context, packageID, userID string) {
	l.Logger.InfoContext(ctx,
		"Package Created",
		slog.String("package_id", packageID),
		slog.String("user_id", userID),
	)
}

// LogPackageVersionBumped logs when a pricing-relevant edit bumps the version
func (l *Logger) LogPackageVersionBumped(ctx context.Context, packageID string, version int) {
	l.Logger.InfoContext(ctx,
		"Package Version Bumped",
		slog.String("package_id", packageID),
		slog.Int("version", version),
	)
}

// LogQuotePriceResolved logs a successful price resolution for a quote
func (l *Logger) LogQuotePriceResolved(quoteID, price, currency string) {
	l.Logger.Info(
		"Quote Price Resolved",
		slog.String("quote_id", quoteID),
		slog.String("price", price),
		slog.String("currency", currency),
	)
}

// LogQuoteRecalcFailed logs a failed recalculation; the quote keeps its last price
func (l *Logger) LogQuoteRecalcFailed(quoteID string, err error) {
	l.Logger.Warn(
		"Quote Recalculation Failed",
		slog.String("quote_id", quoteID),
		slog.String("error", err.Error()),
	)
}

// LogQuoteRecalcDiscarded logs a stale calculation result being thrown away
func (l *Logger) LogQuoteRecalcDiscarded(quoteID string) {
	l.Logger.Debug(
		"Quote Recalculation Discarded",
		slog.String("quote_id", quoteID),
	)
}

// LogQuoteOutOfSync logs a quote drifting from its linked package
func (l *Logger) LogQuoteOutOfSync(quoteID, packageID string) {
	l.Logger.Info(
		"Quote Out Of Sync",
		slog.String("quote_id", quoteID),
		slog.String("package_id", packageID),
	)
}

// Security logging methods

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, userID, method string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("user_id", userID),
		slog.String("method", method),
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

// Package-level shortcuts on the default logger.

func QuotePriceResolved(quoteID, price, currency string) {
	defaultLogger.LogQuotePriceResolved(quoteID, price, currency)
}

func QuoteRecalcFailed(quoteID string, err error) {
	defaultLogger.LogQuoteRecalcFailed(quoteID, err)
}

func QuoteRecalcDiscarded(quoteID string) {
	defaultLogger.LogQuoteRecalcDiscarded(quoteID)
}

func QuoteOutOfSync(quoteID, packageID string) {
	defaultLogger.LogQuoteOutOfSync(quoteID, packageID)
}
