// Package repository описывает хранилища пользователей, заказов и каталога.
// Реализации: gormrepo (postgres/sqlite) и mongorepo (MongoDB).
package repository

import (
	"context"
	"errors"

	"mortex-shop/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Users interface {
	// Create возвращает ErrDuplicate, если email уже занят.
	Create(ctx context.Context, u *models.User) error
	// ByEmail возвращает ErrNotFound, если пользователя нет.
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

type Orders interface {
	Create(ctx context.Context, o *models.Order) error
	// новые первыми; пустой срез, если заказов нет
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
}

type Products interface {
	// UnitPrice возвращает ErrNotFound для неизвестного товара.
	UnitPrice(ctx context.Context, name string) (int64, error)
	BySection(ctx context.Context, section string) ([]models.Product, error)
	Upsert(ctx context.Context, p *models.Product) error
}
