package handlers

import (
	"net/http"

	"mortex-shop/internal/auth"
	"mortex-shop/internal/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type registerForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *Handlers) Register(c *gin.Context) {
	var form registerForm
	if err := bind(c, &form); err != nil {
		respondError(c, errBadRequest)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), auth.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := session.Start(sessions.Default(c), user.Email, h.now()); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, apiResponse{UserLoggedIn: true})
}

type loginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *Handlers) Login(c *gin.Context) {
	var form loginForm
	if err := bind(c, &form); err != nil {
		respondError(c, errBadRequest)
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := session.Start(sessions.Default(c), user.Email, h.now()); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, apiResponse{Data: token, UserLoggedIn: true})
}

func (h *Handlers) Logout(c *gin.Context) {
	if err := session.Destroy(sessions.Default(c)); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to destroy session")
	}
	c.Redirect(http.StatusFound, "/")
}
