package handlers

import (
	"errors"
	"time"

	"mortex-shop/internal/auth"
	"mortex-shop/internal/cart"
	"mortex-shop/internal/models"
	"mortex-shop/internal/repository"
	"mortex-shop/internal/session"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	auth    *auth.Service
	cart    *cart.Service
	users   repository.Users
	catalog repository.Products
	now     func() time.Time
}

func New(authSvc *auth.Service, cartSvc *cart.Service, users repository.Users, catalog repository.Products, now func() time.Time) *Handlers {
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		auth:    authSvc,
		cart:    cartSvc,
		users:   users,
		catalog: catalog,
		now:     now,
	}
}

// currentUser возвращает nil для анонимного запроса.
// Пользователь, пропавший из базы, тоже даёт nil.
func (h *Handlers) currentUser(c *gin.Context) (*models.User, error) {
	id, ok := session.FromContext(c.Request.Context())
	if !ok {
		return nil, nil
	}
	user, err := h.users.ByEmail(c.Request.Context(), id.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return user, err
}
