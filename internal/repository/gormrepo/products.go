package gormrepo

import (
	"context"

	"mortex-shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) UnitPrice(ctx context.Context, name string) (int64, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error; err != nil {
		return 0, translate(err)
	}
	return p.UnitPrice, nil
}

func (r *ProductRepo) BySection(ctx context.Context, section string) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Where("section = ?", section).
		Order("name asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) Upsert(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"section", "unit_price"}),
		}).
		Create(p).Error
}
