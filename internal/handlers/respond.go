package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mortex-shop/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

type apiResponse struct {
	Status       string `json:"status"`
	Data         any    `json:"data,omitempty"`
	Error        string `json:"error,omitempty"`
	UserLoggedIn bool   `json:"userLoggedIn,omitempty"`
}

// бизнес-ошибки отдаются с кодом 200, как и успешные ответы
func respondOK(c *gin.Context, resp apiResponse) {
	resp.Status = statusOK
	c.JSON(http.StatusOK, resp)
}

func respondError(c *gin.Context, err error) {
	if !apperr.IsBusiness(err) {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("api request failed")
	}
	c.JSON(http.StatusOK, apiResponse{Status: statusError, Error: apperr.Message(err)})
}

var errBadRequest = apperr.Invalid("request", "Invalid request")

// bind разбирает тело запроса. Поле неверного JSON-типа остаётся пустым,
// и его отклоняет валидация сервиса с сообщением для этого поля.
func bind(c *gin.Context, form any) error {
	err := c.ShouldBind(form)
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return nil
	}
	return err
}
