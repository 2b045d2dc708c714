package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogd/internal/app/errors"
	"blogd/internal/app/limiter"
	"blogd/internal/config/logger"
)

// requestLogger logs one line per handled request
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Handled request")
	}
}

// limitInFlight holds a limiter slot for the whole request; a request that waits longer
// than queueTimeout for a slot is rejected with 503
func limitInFlight(l limiter.Limiter, queueTimeout time.Duration, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if queueTimeout > 0 {
			var cancel context.CancelFunc

			ctx, cancel = context.WithTimeout(ctx, queueTimeout)
			defer cancel()
		}

		if err := l.Acquire(ctx); err != nil {
			log.Warn().Err(err).Int("in_flight", l.InFlight()).Msgf("Rejected %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse{Error: errors.ErrServerBusy.Error()})

			return
		}
		defer l.Release()

		c.Next()
	}
}
