package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const loggerKey = "hirewiz_logger"

// requestLogger attaches a per-request child logger with a txid and logs
// request start/finish.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLogger := s.logger.With("txid", uuid.New().String())
		c.Set(loggerKey, reqLogger)

		start := time.Now()
		reqLogger.Info("incoming request", "method", c.Request.Method, "path", c.Request.URL.Path)

		c.Next()

		reqLogger.Info("finished request",
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// log returns the request-scoped logger.
func (s *Server) log(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return s.logger
}
