package log

import (
	"time"
)

// HTTPLogEntry describes one served request
type HTTPLogEntry struct {
	Method     string
	Path       string
	Query      string
	Status     int
	Duration   time.Duration
	Size       int
	RemoteAddr string
	UserAgent  string
	RequestID  string
}

// LogHTTPRequest writes an access-log line. Server errors log at error level,
// everything else at info.
func LogHTTPRequest(e HTTPLogEntry) {
	fields := []interface{}{
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"duration_ms", float64(e.Duration.Microseconds()) / 1000,
		"size", e.Size,
		"remote_addr", e.RemoteAddr,
		"user_agent", e.UserAgent,
	}
	if e.Query != "" {
		fields = append(fields, "query", e.Query)
	}
	if e.RequestID != "" {
		fields = append(fields, "request_id", e.RequestID)
	}

	if e.Status >= 500 {
		Errorw("http request", fields...)
		return
	}
	Infow("http request", fields...)
}
