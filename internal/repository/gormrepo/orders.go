package gormrepo

import (
	"context"

	"mortex-shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Create(ctx context.Context, o *models.Order) error {
	return translate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *OrderRepo) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
