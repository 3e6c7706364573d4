package middleware

import (
	"time"

	"mortex-shop/internal/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// InjectIdentity кладёт в контекст запроса вошедшего пользователя, если сессия жива.
func InjectIdentity(maxAge time.Duration, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		id, ok, err := session.Resolve(sess, now(), maxAge)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("failed to save session")
		}
		if ok {
			c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), id))
		}

		c.Next()
	}
}
