package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"example.com/shopfront/internal/config"
	domcategory "example.com/shopfront/internal/domain/category"
	domproduct "example.com/shopfront/internal/domain/product"
	domuser "example.com/shopfront/internal/domain/user"
	"example.com/shopfront/internal/infra/cache"
	"example.com/shopfront/internal/infra/persistence/memory"
	"example.com/shopfront/internal/infra/persistence/mongostore"
	"example.com/shopfront/internal/infra/persistence/sqlstore"
	"example.com/shopfront/internal/infra/security"
	apihttp "example.com/shopfront/internal/interface/http"
	"example.com/shopfront/internal/logger"
	authuc "example.com/shopfront/internal/usecase/auth"
	categoryuc "example.com/shopfront/internal/usecase/category"
	productuc "example.com/shopfront/internal/usecase/product"
)

// backend is the storage selected by STORAGE_DRIVER.
type backend struct {
	users      domuser.Repository
	categories domcategory.Repository
	products   domproduct.Repository
	ping       func(ctx context.Context) error
	close      func(ctx context.Context) error
}

func (b *backend) Ping(ctx context.Context) error { return b.ping(ctx) }

func openBackend(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (*backend, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		s, err := mongostore.Open(ctx, mongostore.Options{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
			Timeout:  cfg.Timeout,
			MaxConns: cfg.MaxConns,
		}, log)
		if err != nil {
			return nil, err
		}
		return &backend{s.Users(), s.Categories(), s.Products(), s.Ping, s.Close}, nil

	case config.DriverMySQL, config.DriverPostgres:
		opts := sqlstore.Options{Timeout: cfg.Timeout, MaxConns: cfg.MaxConns}
		var (
			s   *sqlstore.Store
			err error
		)
		if cfg.Driver == config.DriverMySQL {
			opts.DSN = cfg.MySQLDSN
			s, err = sqlstore.OpenMySQL(ctx, opts, log)
		} else {
			opts.DSN = cfg.PostgresDSN
			s, err = sqlstore.OpenPostgres(ctx, opts, log)
		}
		if err != nil {
			return nil, err
		}
		return &backend{s.Users(), s.Categories(), s.Products(), s.Ping, s.Close}, nil

	case config.DriverMemory:
		s := memory.NewStore()
		return &backend{s.Users(), s.Categories(), s.Products(), s.Ping, s.Close}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.App.Name, cfg.App.LogPath, cfg.App.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	store, err := openBackend(startCtx, cfg.Storage, zl)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	zl.Info("Storage ready", zap.String("driver", cfg.Storage.Driver))

	var categoryCache categoryuc.Cache
	var redisClient *redis.Client
	if cfg.Cache.RedisURL != "" {
		redisClient, err = cache.Connect(startCtx, cache.Options{URL: cfg.Cache.RedisURL})
		if err != nil {
			zl.Warn("Redis unavailable, category cache disabled", zap.Error(err))
		} else {
			categoryCache = cache.NewCategoryCache(redisClient, cfg.App.Name, cfg.Cache.CategoryTTL)
		}
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		secret = uuid.NewString()
		zl.Warn("JWT_SECRET not set, using an ephemeral secret")
	}

	authSvc := authuc.NewService(
		store.users,
		security.NewBcryptService(cfg.JWT.BcryptCost),
		security.NewJWTService(secret, cfg.JWT.Expiration),
		zl,
	)
	categorySvc := categoryuc.NewService(store.categories, categoryCache, zl)
	productSvc := productuc.NewService(store.products, store.users, productuc.Policy{
		DefaultPageSize:    cfg.Listing.DefaultPageSize,
		MaxPageSize:        cfg.Listing.MaxPageSize,
		StrictPriceFilters: cfg.Listing.StrictPriceFilters,
	}, zl)

	api := apihttp.NewAPI(apihttp.Dependencies{
		AuthService:     authSvc,
		CategoryService: categorySvc,
		ProductService:  productSvc,
		Health:          store,
		Logger:          zl,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		zl.Info("Shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP shutdown failed", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zl.Warn("Redis close failed", zap.Error(err))
		}
	}
	if err := store.close(shutdownCtx); err != nil {
		zl.Warn("Storage close failed", zap.Error(err))
	}
	return nil
}
