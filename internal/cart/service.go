// Package cart записывает заказы из корзины и отдаёт историю заказов пользователя.
package cart

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"mortex-shop/internal/apperr"
	"mortex-shop/internal/events"
	"mortex-shop/internal/metrics"
	"mortex-shop/internal/models"
	"mortex-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Catalog возвращает repository.ErrNotFound для неизвестного товара.
type Catalog interface {
	UnitPrice(ctx context.Context, productName string) (int64, error)
}

type Service struct {
	orders    repository.Orders
	catalog   Catalog
	publisher events.Publisher
	now       func() time.Time
}

type Option func(*Service)

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(orders repository.Orders, catalog Catalog, opts ...Option) *Service {
	s := &Service{
		orders:    orders,
		catalog:   catalog,
		publisher: events.Noop{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func TotalPrice(unitPrice int64, quantity int) int64 {
	return unitPrice * int64(quantity)
}

// AddToCart сохраняет заказ владельца email на quantity единиц товара productName.
// Повторные вызовы не схлопываются: каждый создаёт новый заказ.
func (s *Service) AddToCart(ctx context.Context, email, productName string, quantity int) (*models.Order, error) {
	productName = strings.TrimSpace(productName)
	switch {
	case email == "":
		return nil, apperr.Invalid("email", "Invalid email")
	case productName == "":
		return nil, apperr.Invalid("productName", "Invalid product name")
	case quantity <= 0:
		return nil, apperr.Invalid("quantity", "Invalid quantity")
	}

	unitPrice, err := s.catalog.UnitPrice(ctx, productName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrProductNotFound
		}
		return nil, apperr.Persistence("resolve price", err)
	}
	if unitPrice > 0 && int64(quantity) > math.MaxInt64/unitPrice {
		return nil, apperr.Invalid("quantity", "Invalid quantity")
	}

	order := &models.Order{
		ID:          uuid.NewString(),
		UserEmail:   email,
		ProductName: productName,
		Quantity:    quantity,
		TotalPrice:  TotalPrice(unitPrice, quantity),
		Timestamp:   s.now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperr.Persistence("save order", err)
	}
	metrics.OrdersRecorded.Inc()

	// ошибка публикации не отменяет заказ
	if err := s.publisher.Publish(ctx, events.OrderRecorded, order); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order event")
	}
	return order, nil
}

// ListOrders отдаёт заказы, новые первыми.
func (s *Service) ListOrders(ctx context.Context, email string) ([]models.Order, error) {
	orders, err := s.orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Persistence("list orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
