package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger присваивает запросу request id, кладёт логгер в контекст
// и пишет строку access-лога по завершении.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(RequestIDHeader, rid)

		log := base.With().Str("request_id", rid).Logger()
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))

		start := time.Now()
		c.Next()

		ev := log.Info()
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("route", routePattern(c)).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// Recovery превращает панику обработчика в 500 с записью в лог.
func Recovery() gin.RecoveryFunc {
	return func(c *gin.Context, err any) {
		zerolog.Ctx(c.Request.Context()).Error().Interface("panic", err).Msg("handler panicked")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		c.Abort()
	}
}

func routePattern(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}
