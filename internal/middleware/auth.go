package middleware

import (
	"net/http"

	"mortex-shop/internal/session"

	"github.com/gin-gonic/gin"
)

// RedirectIfLoggedIn уводит вошедшего пользователя со страниц входа и регистрации на главную.
func RedirectIfLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.FromContext(c.Request.Context()); ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
