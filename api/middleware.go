package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"
)

const RequestIdHeader = "X-Request-Id"

// RequestIdMiddleware tags each request with an id, reusing one supplied by
// the client, and attaches a logger carrying it to the request context.
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(RequestIdHeader)
		if requestId == "" {
			requestId = "req_" + ksuid.New().String()
		}
		c.Set("requestId", requestId)
		c.Header(RequestIdHeader, requestId)

		logger := log.With().Str("requestId", requestId).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()
	}
}

func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Ctx(c.Request.Context()).Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	}
}
