package handlers

import (
	"mortex-shop/internal/apperr"
	"mortex-shop/internal/session"

	"github.com/gin-gonic/gin"
)

type addToCartForm struct {
	// необязателен; если передан, должен совпадать с email сессии
	Email       string `json:"email" form:"email"`
	ProductName string `json:"productName" form:"productName"`
	Quantity    int    `json:"quantity" form:"quantity"`
}

// AddToCart записывает заказ на пользователя из сессии.
func (h *Handlers) AddToCart(c *gin.Context) {
	id, loggedIn := session.FromContext(c.Request.Context())
	if !loggedIn {
		respondError(c, apperr.ErrUnauthenticated)
		return
	}

	var form addToCartForm
	if err := bind(c, &form); err != nil {
		respondError(c, errBadRequest)
		return
	}
	if form.Email != "" && form.Email != id.Email {
		respondError(c, apperr.Invalid("email", "Invalid email"))
		return
	}

	order, err := h.cart.AddToCart(c.Request.Context(), id.Email, form.ProductName, form.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, apiResponse{Data: order})
}
