package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with context
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger for service paths.
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a human-readable logger for CLI paths.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// AnalysisLogger logs a completed sample analysis
func (l *Logger) AnalysisLogger(lines int, probability float64, confidence, verdict string, duration time.Duration, cacheHit bool) {
	l.Info("Analysis Completed",
		"lines", lines,
		"ai_probability", probability,
		"confidence", confidence,
		"verdict", verdict,
		"duration_ms", duration.Milliseconds(),
		"cache_hit", cacheHit,
	)
}

// ScanLogger logs a completed repository scan
func (l *Logger) ScanLogger(source string, filesScanned, filesFailed int, avgProbability float64, duration time.Duration) {
	l.Info("Scan Completed",
		"source", source,
		"files_scanned", filesScanned,
		"files_failed", filesFailed,
		"avg_probability", avgProbability,
		"duration_ms", duration.Milliseconds(),
	)
}

// APIErrorLogger logs API errors with context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

// CacheLogger logs cache operations
func (l *Logger) CacheLogger(operation, key string, hit bool, itemCount int) {
	keyHash := key
	if len(keyHash) > 8 {
		keyHash = keyHash[:8] + "..."
	}
	l.Debug("Cache Operation",
		"operation", operation,
		"key_hash", keyHash,
		"hit", hit,
		"cache_size", itemCount,
	)
}

// SystemLogger logs system-level events
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

var startTime = time.Now()
