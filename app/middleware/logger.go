package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"upflux-ai/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

// Logger emits one structured line per request through the shared zap
// logger. POST bodies are attached in compressed form so a request can
// be replayed from the log when debugging a bad clustering run.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var bodyStr string
		if c.Request.Method == http.MethodPost {
			bodyStr = getRequestBody(c)
		}

		c.Next()

		// Unknown routes are scanner noise, not traffic worth a line.
		if c.Writer.Status() == http.StatusNotFound {
			return
		}

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.RequestURI),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if bodyStr != "" {
			fields = append(fields, zap.String("body", bodyStr))
		}
		logger.Info("request", fields...)
	}
}

// getRequestBody reads and restores the request body.
func getRequestBody(c *gin.Context) string {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}
	return CompressBody(string(bodyBytes))
}

// CompressBody strips JSON whitespace and truncates oversized bodies.
// Telemetry batches for large fleets run long; 1000 bytes is enough to
// identify the request without flooding the log.
func CompressBody(body string) string {
	if len(body) == 0 {
		return ""
	}

	compressed := pretty.Ugly([]byte(body))
	if len(compressed) > 1000 {
		return string(compressed[:1000]) + "..."
	}
	return string(compressed)
}
