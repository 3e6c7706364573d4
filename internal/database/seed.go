package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mortex-shop/internal/models"
	"mortex-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCatalog: стартовый ассортимент, цены в копейках.
var DefaultCatalog = []models.Product{
	{Name: "Rose Oud", Section: models.SectionForHer, UnitPrice: 459000},
	{Name: "Velvet Musk", Section: models.SectionForHer, UnitPrice: 389000},
	{Name: "Cedar Noir", Section: models.SectionForHim, UnitPrice: 412000},
	{Name: "Amber Leather", Section: models.SectionForHim, UnitPrice: 527000},
	{Name: "Citrus Splash", Section: models.SectionSale, UnitPrice: 199000},
	{Name: "Vetiver Mist", Section: models.SectionSale, UnitPrice: 249000},
}

// AdminAccount берётся из конфига. Пустая учётка не создаётся.
type AdminAccount struct {
	Email    string
	Password string
}

// Seed мигрирует схему, заливает каталог и создаёт администратора.
func Seed(ctx context.Context, s *Stores, admin AdminAccount, log zerolog.Logger) error {
	if err := s.Migrate(ctx); err != nil {
		return fmt.Errorf("database: migrate: %w", err)
	}

	for i := range DefaultCatalog {
		p := DefaultCatalog[i]
		if err := s.Products.Upsert(ctx, &p); err != nil {
			return fmt.Errorf("database: seed product %q: %w", p.Name, err)
		}
	}
	log.Info().Int("products", len(DefaultCatalog)).Msg("catalog seeded")

	return createDefaultAdmin(ctx, s.Users, admin, log)
}

// админ только из конфига
func createDefaultAdmin(ctx context.Context, users repository.Users, admin AdminAccount, log zerolog.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	_, err := users.ByEmail(ctx, admin.Email)
	if err == nil {
		// админ уже есть
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("database: check admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("database: hash admin password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        admin.Email,
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(ctx, &user); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("database: create admin: %w", err)
	}

	log.Info().Str("email", admin.Email).Msg("created default admin user")
	return nil
}
