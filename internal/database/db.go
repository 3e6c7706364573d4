package database

import (
	"context"
	"fmt"
	"time"

	"mortex-shop/internal/config"
	"mortex-shop/internal/repository"
	"mortex-shop/internal/repository/gormrepo"
	"mortex-shop/internal/repository/mongorepo"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Stores собирает хранилища выбранного бэкенда.
type Stores struct {
	Users    repository.Users
	Orders   repository.Orders
	Products repository.Products

	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

func (s *Stores) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open подключается к базе, пока не кончатся попытки.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	var (
		stores *Stores
		err    error
	)
	for i := 1; i <= maxAttempts; i++ {
		log.Info().Str("driver", cfg.DBDriver).Int("attempt", i).Int("max", maxAttempts).Msg("connecting to database")

		stores, err = open(ctx, cfg)
		if err == nil {
			log.Info().Str("driver", cfg.DBDriver).Msg("connected to database")
			return stores, nil
		}

		log.Warn().Err(err).Msg("failed to connect to database")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
	return nil, fmt.Errorf("database: connect after %d attempts: %w", maxAttempts, err)
}

func open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	if cfg.DBDriver == config.DriverMongo {
		return openMongo(ctx, cfg.DBDSN, cfg.DBName)
	}

	dialector, err := buildDialector(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	return NewGormStores(db), nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}
}

// NewGormStores собирает хранилища поверх уже открытого gorm.DB.
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:    gormrepo.NewUserRepo(db),
		Orders:   gormrepo.NewOrderRepo(db),
		Products: gormrepo.NewProductRepo(db),
		migrate: func(ctx context.Context) error {
			return gormrepo.Migrate(db.WithContext(ctx))
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func openMongo(ctx context.Context, uri, dbName string) (*Stores, error) {
	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongorepo.Connect(connCtx, uri)
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	return &Stores{
		Users:    mongorepo.NewUserRepo(db),
		Orders:   mongorepo.NewOrderRepo(db),
		Products: mongorepo.NewProductRepo(db),
		migrate: func(ctx context.Context) error {
			return mongorepo.EnsureIndexes(ctx, db)
		},
		close: client.Disconnect,
	}, nil
}
