package cart_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"mortex-shop/internal/apperr"
	"mortex-shop/internal/cart"
	"mortex-shop/internal/events"
	"mortex-shop/internal/models"
	"mortex-shop/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock выдаёт строго возрастающее время, чтобы порядок заказов был детерминированным.
type clock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

type recordingPublisher struct {
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.keys = append(p.keys, key)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func newService(t *testing.T, opts ...cart.Option) *cart.Service {
	t.Helper()
	stores := testhelpers.NewSeededStores(t)
	c := &clock{cur: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	opts = append([]cart.Option{cart.WithClock(c.Now)}, opts...)
	return cart.NewService(stores.Orders, stores.Products, opts...)
}

func TestTotalPrice(t *testing.T) {
	assert.EqualValues(t, 0, cart.TotalPrice(0, 5))
	assert.EqualValues(t, 1377000, cart.TotalPrice(459000, 3))
}

func TestAddToCart_ComputesTotalAndPersists(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	order, err := svc.AddToCart(ctx, "anna@example.com", "Rose Oud", 3)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "anna@example.com", order.UserEmail)
	assert.Equal(t, "Rose Oud", order.ProductName)
	assert.Equal(t, 3, order.Quantity)
	assert.EqualValues(t, 3*459000, order.TotalPrice)
	assert.False(t, order.Timestamp.IsZero())

	orders, err := svc.ListOrders(ctx, "anna@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.EqualValues(t, 3*459000, orders[0].TotalPrice)
}

func TestListOrders_MostRecentFirst(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "anna@example.com", "Cedar Noir", 1)
	require.NoError(t, err)
	latest, err := svc.AddToCart(ctx, "anna@example.com", "Rose Oud", 3)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "boris@example.com", "Vetiver Mist", 2)
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, "anna@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, latest.ID, orders[0].ID)
	assert.Equal(t, "Cedar Noir", orders[1].ProductName)
}

func TestListOrders_EmptyIsNotAnError(t *testing.T) {
	svc := newService(t)

	orders, err := svc.ListOrders(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestAddToCart_Validation(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		email    string
		product  string
		quantity int
		field    string
	}{
		{"no owner", "", "Rose Oud", 1, "email"},
		{"empty product", "anna@example.com", "   ", 1, "productName"},
		{"zero quantity", "anna@example.com", "Rose Oud", 0, "quantity"},
		{"negative quantity", "anna@example.com", "Rose Oud", -2, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddToCart(context.Background(), tc.email, tc.product, tc.quantity)
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestAddToCart_QuantityOverflowingTotal(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "anna@example.com", "Rose Oud", 1<<45)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "quantity", ve.Field)
	assert.Equal(t, "Invalid quantity", apperr.Message(err))

	orders, err := svc.ListOrders(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestAddToCart_LargestQuantityThatFits(t *testing.T) {
	svc := cart.NewService(testhelpers.NewStores(t).Orders, fixedCatalog{"Penny": 1})

	order, err := svc.AddToCart(context.Background(), "anna@example.com", "Penny", math.MaxInt)
	require.NoError(t, err)
	assert.EqualValues(t, math.MaxInt, order.TotalPrice)
	assert.GreaterOrEqual(t, order.TotalPrice, int64(0))
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	svc := newService(t)

	_, err := svc.AddToCart(context.Background(), "anna@example.com", "Mystery Box", 1)
	require.ErrorIs(t, err, apperr.ErrProductNotFound)

	orders, err := svc.ListOrders(context.Background(), "anna@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestAddToCart_DuplicatesAreNotCollapsed(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.AddToCart(ctx, "anna@example.com", "Rose Oud", 1)
		require.NoError(t, err)
	}

	orders, err := svc.ListOrders(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestAddToCart_PublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(t, cart.WithPublisher(pub))

	_, err := svc.AddToCart(context.Background(), "anna@example.com", "Rose Oud", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{events.OrderRecorded}, pub.keys)
}

func TestAddToCart_PublishFailureDoesNotFailOrder(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker unavailable")}
	svc := newService(t, cart.WithPublisher(pub))

	order, err := svc.AddToCart(context.Background(), "anna@example.com", "Rose Oud", 1)
	require.NoError(t, err)
	assert.NotNil(t, order)
}

type failingOrders struct{}

func (failingOrders) Create(context.Context, *models.Order) error { return errors.New("write failed") }
func (failingOrders) ListByEmail(context.Context, string) ([]models.Order, error) {
	return nil, errors.New("read failed")
}

type fixedCatalog map[string]int64

func (c fixedCatalog) UnitPrice(_ context.Context, name string) (int64, error) {
	return c[name], nil
}

func TestStoreFailuresArePersistenceErrors(t *testing.T) {
	svc := cart.NewService(failingOrders{}, fixedCatalog{"Rose Oud": 100})

	_, err := svc.AddToCart(context.Background(), "anna@example.com", "Rose Oud", 2)
	var pe *apperr.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "save order", pe.Op)

	_, err = svc.ListOrders(context.Background(), "anna@example.com")
	assert.ErrorAs(t, err, &pe)
}
