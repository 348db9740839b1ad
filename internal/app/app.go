package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirinyoku/gigledger/internal/config"
	"github.com/kirinyoku/gigledger/internal/issuer"
	"github.com/kirinyoku/gigledger/internal/postgres"
	"github.com/kirinyoku/gigledger/internal/redis"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/repository/memory"
	postgresrepo "github.com/kirinyoku/gigledger/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/gigledger/internal/repository/redis"
	"github.com/kirinyoku/gigledger/internal/service"
	"github.com/kirinyoku/gigledger/internal/service/concert"
	httpgin "github.com/kirinyoku/gigledger/internal/transport/http/gin"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	hub        *httpgin.Hub
	pubsub     *redisrepo.StatusPubSub
	closers    []func()
}

// Store opens the configured store. For postgres the schema is migrated
// first. The returned func releases the store.
func Store(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.Store == config.DriverMemory {
		return memory.NewStore(), func() {}, nil
	}

	pool, err := postgres.New(ctx, postgres.Config{DSN: cfg.Postgres.DSN()})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}

	return postgresrepo.NewStore(pool), pool.Close, nil
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx := context.Background()

	policy, err := concert.ParsePayoutPolicy(cfg.Engine.PayoutPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYOUT_POLICY: %w", err)
	}

	store, closeStore, err := Store(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		logger:  logger,
		hub:     httpgin.NewHub(),
		closers: []func(){closeStore},
	}

	// Without redis a single instance serves SSE straight from the hub.
	deps := service.Deps{Notifier: a.hub}
	var idem httpgin.IdempotencyStore

	if cfg.Redis.Addr != "" {
		rdb, err := redis.New(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })

		a.pubsub = redisrepo.NewStatusPubSub(rdb)
		deps = service.Deps{
			Cache:    redisrepo.NewCache(rdb),
			Notifier: a.pubsub,
			Limiter:  redisrepo.NewSlidingWindowLimiter(rdb, "buy", cfg.Engine.BuyRateLimit, cfg.Engine.BuyRateWindow),
		}
		idem = redisrepo.NewIdempotencyStore(rdb, 24*time.Hour)
	} else {
		logger.Warn("REDIS_ADDR not set: running without cache, rate limiting and idempotency keys")
	}

	services := service.NewServices(store, deps, service.Config{
		Engine:       cfg.Engine.Identity,
		Operators:    cfg.Engine.Operators,
		PayoutPolicy: policy,
	}, logger)

	// The engine mints every ticket and supporter token.
	for _, iss := range []*issuer.Issuer{services.Tickets, services.Supporters} {
		if err := iss.EnsureMinter(ctx, cfg.Engine.Identity); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to approve engine minter: %w", err)
		}
	}

	router := httpgin.NewRouter(services, httpgin.Options{
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		Idem:      idem,
		Hub:       a.hub,
	}, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port, "store", a.cfg.Store)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Fan status notifications from every instance out to local SSE clients
	if a.pubsub != nil {
		g.Go(func() error {
			err := a.pubsub.Subscribe(gCtx, a.hub.Broadcast)
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("status subscription: %w", err)
			}
			return nil
		})
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
