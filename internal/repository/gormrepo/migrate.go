package gormrepo

import (
	"mortex-shop/internal/models"

	"gorm.io/gorm"
)

// Migrate создаёт таблицы и индексы для всех сущностей.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.Product{},
	)
}
