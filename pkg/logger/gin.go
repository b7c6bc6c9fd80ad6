package logger

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-Id"
	ginLoggerKey    = "logger"
)

// Middleware tags every operator API request with a request id and writes one summary
// line per request. Attributes added later through Enrich (the caller's identity) also
// land on the summary line.
func Middleware(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(headerRequestID, rid)

		reqLogger := l.With("request_id", rid)
		if gid := c.Param("guild_id"); gid != "" {
			reqLogger = reqLogger.With("guild_id", gid)
		}
		store(c, reqLogger)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", float64(time.Since(start).Milliseconds()),
		}
		final := FromGin(c)
		if len(c.Errors) > 0 {
			final.Error("request", append(attrs, "errors", c.Errors.String())...)
			return
		}
		final.Info("request", attrs...)
	}
}

// Enrich adds attrs to the request logger for the rest of the request.
func Enrich(c *gin.Context, attrs ...any) {
	store(c, FromGin(c).With(attrs...))
}

func store(c *gin.Context, l *slog.Logger) {
	c.Set(ginLoggerKey, l)
	c.Request = c.Request.WithContext(With(c.Request.Context(), l))
}

// FromGin pulls the request-scoped logger from Gin context.
func FromGin(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(ginLoggerKey); ok {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return From(c.Request.Context())
}
