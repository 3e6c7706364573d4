package handlers

import (
	"net/http"

	"mortex-shop/internal/apperr"
	"mortex-shop/internal/models"
	"mortex-shop/internal/session"

	"github.com/gin-gonic/gin"
)

// Pages: у каждой страницы свой GET-маршрут и шаблон.
var Pages = []string{
	"about",
	"api",
	"basket",
	"contact",
	"feedback",
	"forher",
	"forhim",
	"login",
	"signup",
	"profile",
	"quiz",
	"sale",
	"todo",
}

// страницы, которым нужен раздел каталога
var catalogPages = map[string]string{
	"forher": models.SectionForHer,
	"forhim": models.SectionForHim,
	"sale":   models.SectionSale,
}

func (h *Handlers) Index(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		internalError(c, err)
		return
	}

	data := gin.H{}
	if user != nil {
		data["CurrentUser"] = user
	}
	render(c, http.StatusOK, "index", data)
}

// Page возвращает обработчик для страницы из Pages.
func (h *Handlers) Page(name string) gin.HandlerFunc {
	section, isCatalog := catalogPages[name]

	return func(c *gin.Context) {
		data := gin.H{}

		if isCatalog {
			products, err := h.catalog.BySection(c.Request.Context(), section)
			if err != nil {
				internalError(c, err)
				return
			}
			data["products"] = products
		}

		if name == "profile" {
			user, err := h.currentUser(c)
			if err != nil {
				internalError(c, err)
				return
			}
			if user != nil {
				data["CurrentUser"] = user
			}
		}

		render(c, http.StatusOK, name, data)
	}
}

// Basket показывает историю заказов. Анониму отдаётся главная.
func (h *Handlers) Basket(c *gin.Context) {
	id, ok := session.FromContext(c.Request.Context())
	if !ok {
		render(c, http.StatusOK, "index", nil)
		return
	}

	user, err := h.currentUser(c)
	if err != nil {
		internalError(c, err)
		return
	}
	orders, err := h.cart.ListOrders(c.Request.Context(), id.Email)
	if err != nil {
		internalError(c, err)
		return
	}

	data := gin.H{"orders": orders}
	if user != nil {
		data["CurrentUser"] = user
	}
	render(c, http.StatusOK, "basket", data)
}

func (h *Handlers) NotFound(c *gin.Context) {
	_ = c.Error(apperr.ErrNotFound)
	render(c, http.StatusNotFound, "error", gin.H{
		"errorCode":    http.StatusNotFound,
		"errorMessage": "Page Not Found",
	})
}
