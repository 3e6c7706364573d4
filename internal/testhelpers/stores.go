// Package testhelpers поднимает настоящие хранилища поверх sqlite в памяти.
//
//	func TestSomething(t *testing.T) {
//	    stores := testhelpers.NewStores(t)
//	    svc := cart.NewService(stores.Orders, stores.Products)
//	    ...
//	}
package testhelpers

import (
	"context"
	"testing"

	"mortex-shop/internal/database"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewStores возвращает мигрированные хранилища с пустыми таблицами.
// Каждый вызов получает отдельную базу, закрываемую по окончании теста.
func NewStores(t *testing.T) *database.Stores {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	stores := database.NewGormStores(db)
	if err := stores.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = stores.Close(context.Background()) })
	return stores
}

// NewSeededStores дополнительно заливает каталог по умолчанию.
func NewSeededStores(t *testing.T) *database.Stores {
	t.Helper()

	stores := NewStores(t)
	for i := range database.DefaultCatalog {
		p := database.DefaultCatalog[i]
		if err := stores.Products.Upsert(context.Background(), &p); err != nil {
			t.Fatalf("seed product %q: %v", p.Name, err)
		}
	}
	return stores
}
