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

	"github.com/go-redis/redis/v8"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/marawan13001/zmarketfr-sub000/internal/checkout"
	"github.com/marawan13001/zmarketfr-sub000/internal/config"
	"github.com/marawan13001/zmarketfr-sub000/internal/db"
	httpapi "github.com/marawan13001/zmarketfr-sub000/internal/http"
	"github.com/marawan13001/zmarketfr-sub000/internal/identity"
	"github.com/marawan13001/zmarketfr-sub000/internal/janitor"
	"github.com/marawan13001/zmarketfr-sub000/internal/notify"
	"github.com/marawan13001/zmarketfr-sub000/internal/order"
	"github.com/marawan13001/zmarketfr-sub000/internal/stock"
	"github.com/marawan13001/zmarketfr-sub000/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- storage binding ---
	var (
		store   storage.Store
		sweeper janitor.Sweeper
	)
	switch cfg.Storage {
	case "postgres":
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
		pg := storage.NewPostgres(pool)
		store, sweeper = pg, pg

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()

		rs := storage.NewRedis(client, cfg.CartTTL)
		if err := rs.Ping(ctx); err != nil {
			logger.Fatalf("redis connect: %v", err)
		}
		// Session keys expire via TTL; no sweeper needed.
		store = rs

	case "memory":
		mem := storage.NewMemory()
		store, sweeper = mem, mem

	default:
		logger.Fatalf("unknown storage backend %q", cfg.Storage)
	}

	// --- notification dispatcher ---
	var dispatcher order.Dispatcher
	if cfg.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("connect to RabbitMQ: %v", err)
		}
		defer conn.Close()

		pub, err := notify.NewAMQPDispatcher(conn, cfg.MerchantPhone, cfg.MerchantEmail)
		if err != nil {
			logger.Fatalf("notification publisher: %v", err)
		}
		defer pub.Close()
		dispatcher = pub
	} else {
		dispatcher = notify.NewLogDispatcher(logger, cfg.MerchantPhone, cfg.MerchantEmail)
	}

	// --- core wiring ---
	registry := stock.NewRegistry(store)
	sessions := checkout.NewManager()
	processor := order.NewProcessor(cfg.ProcessingDelay, dispatcher, logger)

	var identityClient httpapi.IdentityClient
	if cfg.IdentityURL != "" {
		identityClient = identity.NewClient(cfg.IdentityURL, cfg.IdentityKey)
	}

	if sweeper != nil {
		j, err := janitor.New(cfg.JanitorSchedule, sweeper, cfg.CartTTL, logger)
		if err != nil {
			logger.Fatalf("janitor: %v", err)
		}
		j.Start()
		defer j.Stop()
	}

	// --- HTTP ---
	router := httpapi.NewRouter(httpapi.Deps{
		Stock:    httpapi.NewStockHandler(registry),
		Cart:     httpapi.NewCartHandler(store, registry),
		Checkout: httpapi.NewCheckoutHandler(store, registry, sessions, processor),
		Me:       httpapi.NewMeHandler(identityClient),
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("http listening on %s (storage=%s)", cfg.HTTPAddr, cfg.Storage)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	_ = httpServer.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}
