package handlers

import (
	"net/http"

	"mortex-shop/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// render добавляет в данные шаблона состояние сессии.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	_, loggedIn := session.FromContext(c.Request.Context())
	data["userLoggedIn"] = loggedIn
	data["currentUrl"] = c.Request.URL.RequestURI()

	c.HTML(status, page+".html", data)
}

// internalError логирует сбой хранилища и отдаёт страницу 500.
func internalError(c *gin.Context, err error) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("page failed")
	c.String(http.StatusInternalServerError, "Internal Server Error")
}
