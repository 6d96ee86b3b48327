package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ZapLogger logs one line per request. Event streams that end normally are
// logged at debug level since every page view opens one.
func ZapLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := requestFields(c, time.Since(start))
		if isEventStream(c) && status == http.StatusOK {
			logger.Debug("event stream closed", fields...)
			return
		}

		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			logger.Error("request failed", append(fields, zap.String("errors", errs.String()))...)
			return
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request completed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	}
}

func requestFields(c *gin.Context, latency time.Duration) []zap.Field {
	path := c.Request.URL.Path
	if raw := c.Request.URL.RawQuery; raw != "" && !strings.Contains(raw, "secret=") {
		path += "?" + raw
	}
	fields := []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", path),
		zap.String("route", c.FullPath()),
		zap.String("client_ip", c.ClientIP()),
		zap.Duration("latency", latency),
	}
	if ident := CurrentIdentity(c); !ident.Anonymous() {
		fields = append(fields, zap.String("user_id", ident.UserID))
	}
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}
	return fields
}

func isEventStream(c *gin.Context) bool {
	return strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "text/event-stream")
}
