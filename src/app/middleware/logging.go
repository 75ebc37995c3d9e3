package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"palpitefc/src/infra/logger"
)

// maxLoggedBody caps how much of each body ends up in a log line.
const maxLoggedBody = 2048

// Logging emits one line per request. Request and response bodies are
// included at debug level only.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		debug := log.Enabled(c.Request.Context(), slog.LevelDebug)

		var reqBodyBytes []byte
		var rec *responseCapture
		if debug {
			if c.Request.Body != nil {
				reqBodyBytes, _ = io.ReadAll(c.Request.Body)
				c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes))
			}
			rec = &responseCapture{ResponseWriter: c.Writer}
			c.Writer = rec
		}

		c.Next()

		reqLog := logger.WithRequestID(log, GetRequestID(c))
		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}
		if userID := GetUserID(c); userID != 0 {
			attrs = append(attrs, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		if rec != nil {
			attrs = append(attrs,
				"request", truncate(reqBodyBytes),
				"response", truncate(rec.body.Bytes()),
			)
		}

		switch {
		case status >= 500:
			reqLog.Error("request failed", attrs...)
		case status >= 400:
			reqLog.Warn("request rejected", attrs...)
		default:
			reqLog.Info("request handled", attrs...)
		}
	}
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "..."
	}
	return string(b)
}

// responseCapture captures response body while delegating to original writer.
type responseCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *responseCapture) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
