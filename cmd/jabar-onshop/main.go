package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marwan-kudus/jabar-onshop/internal/auth"
	"github.com/marwan-kudus/jabar-onshop/internal/cart"
	"github.com/marwan-kudus/jabar-onshop/internal/catalog"
	"github.com/marwan-kudus/jabar-onshop/internal/config"
	"github.com/marwan-kudus/jabar-onshop/internal/db"
	"github.com/marwan-kudus/jabar-onshop/internal/events"
	"github.com/marwan-kudus/jabar-onshop/internal/httpapi"
	"github.com/marwan-kudus/jabar-onshop/internal/order"
	"github.com/marwan-kudus/jabar-onshop/internal/user"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[jabar-onshop] ", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	catalogRepo := catalog.NewPostgresRepository(pool)
	cartRepo := cart.NewPostgresRepository(pool)
	orderRepo := order.NewPostgresRepository(pool)
	userRepo := user.NewPostgresRepository(pool)
	userService := user.NewService(userRepo)
	sessions := auth.NewSessionStore(pool, cfg.SessionTTL)

	if cfg.RunSeed {
		if err := catalog.Seed(ctx, catalogRepo); err != nil {
			logger.Fatalf("seed catalog: %v", err)
		}
	}

	// --- AMQP (optional) ---
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitURL != "" {
		conn, err := events.DialRabbit(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("rabbitmq connect: %v", err)
		}
		defer conn.Close()

		rabbitPub, err := events.NewRabbitPublisher(conn)
		if err != nil {
			logger.Fatalf("rabbitmq publisher: %v", err)
		}
		defer rabbitPub.Close()
		publisher = rabbitPub
	}

	// --- HTTP ---
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:           logger,
		Catalog:          catalogRepo,
		Cart:             cartRepo,
		Orders:           orderRepo,
		Users:            userService,
		Sessions:         sessions,
		Authority:        sessions,
		Publisher:        publisher,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}
