package ui

import (
	"net/http"
	"time"

	"hierview/domain/core"
	"hierview/internal/errors"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// setupMiddleware configures Gin middleware and the embedded static files
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Recovery())
	s.router.Use(requestID())
	s.router.Use(s.requestLogger())

	staticFS, err := staticFiles()
	if err != nil {
		return errors.Wrap(err, "failed to create static filesystem")
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// requestID tags every request, keeping a caller-supplied ID when it is a valid UUID
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := core.ParseID(c.GetHeader(requestIDHeader))
		if !ok {
			id = core.NewID()
		}
		c.Set(requestIDHeader, id.String())
		c.Header(requestIDHeader, id.String())
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).Round(time.Microsecond),
			"request_id", c.GetString(requestIDHeader),
		)
	}
}
