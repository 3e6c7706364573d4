package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mortex-shop/internal/auth"
	"mortex-shop/internal/cart"
	"mortex-shop/internal/config"
	"mortex-shop/internal/database"
	"mortex-shop/internal/events"
	"mortex-shop/internal/handlers"
	"mortex-shop/internal/logger"
	"mortex-shop/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	if log.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	stores, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("database unavailable")
		return err
	}
	defer func() { _ = stores.Close(context.Background()) }()

	admin := database.AdminAccount{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
	if err := database.Seed(ctx, stores, admin, log); err != nil {
		log.Error().Err(err).Msg("seed failed")
		return err
	}

	publisher := newPublisher(cfg, log)
	defer func() { _ = publisher.Close() }()

	authSvc := auth.NewService(stores.Users, auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL))
	cartSvc := cart.NewService(stores.Orders, stores.Products, cart.WithPublisher(publisher))
	h := handlers.New(authSvc, cartSvc, stores.Users, stores.Products, time.Now)

	router, err := server.NewRouter(server.Options{Config: cfg, Log: log}, h)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msgf("app listening at http://localhost:%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("server shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		return err
	}
	log.Info().Msg("server closed")
	return nil
}

// newPublisher подключается к брокеру, если он настроен; иначе события не отправляются.
func newPublisher(cfg *config.Config, log zerolog.Logger) events.Publisher {
	if cfg.RabbitURL == "" {
		return events.Noop{}
	}
	pub, err := events.DialRabbit(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		log.Warn().Err(err).Msg("rabbit unavailable, order events disabled")
		return events.Noop{}
	}
	return pub
}

