package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/oddsboard/external/oddsapi"
	"github.com/riskibarqy/oddsboard/internal/config"
	"github.com/riskibarqy/oddsboard/internal/domain/feed"
	"github.com/riskibarqy/oddsboard/internal/domain/match"
	"github.com/riskibarqy/oddsboard/internal/domain/rawdata"
	cacherepo "github.com/riskibarqy/oddsboard/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/oddsboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/oddsboard/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/oddsboard/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/oddsboard/internal/platform/cache"
	"github.com/riskibarqy/oddsboard/internal/platform/id"
	"github.com/riskibarqy/oddsboard/internal/platform/logging"
	"github.com/riskibarqy/oddsboard/internal/platform/metrics"
	"github.com/riskibarqy/oddsboard/internal/platform/resilience"
	"github.com/riskibarqy/oddsboard/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App owns the HTTP server, the background refresher and the connections
// they share.
type App struct {
	server          *http.Server
	refresher       *usecase.RefreshService
	refreshInterval time.Duration
	logger          *logging.Logger
	closers         []func() error
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	provider, err := oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL:       cfg.OddsAPIBaseURL,
		APIKey:        cfg.OddsAPIKey,
		Timeout:       cfg.OddsAPITimeout,
		MaxRetries:    cfg.OddsAPIMaxRetries,
		RatePerSecond: cfg.OddsAPIRatePerSecond,
		Burst:         cfg.OddsAPIBurst,
		Logger:        logger,
		Metrics:       m,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OddsAPICircuitEnabled,
			FailureThreshold: cfg.OddsAPICircuitFailureCount,
			OpenTimeout:      cfg.OddsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OddsAPICircuitHalfOpenMaxReq,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build odds api client: %w", err)
	}

	rawRepo, err := a.rawDataRepository(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	boardCache := a.boardCache(cfg, m)

	markets := usecase.NewMarketService(provider, rawRepo, boardCache, m, logger, usecase.MarketServiceConfig{
		Regions: cfg.OddsRegions,
		Markets: cfg.OddsMarkets,
		Feeds:   feedRequests(cfg.Feeds),
		Workers: cfg.NormalizeWorkers,
	})
	leagues := usecase.NewLeagueService(provider, 0, logger)
	if cfg.RefreshEnabled {
		a.refresher = usecase.NewRefreshService(markets, m, logger)
		a.refreshInterval = cfg.RefreshInterval
	}

	router := httpapi.NewRouter(httpapi.NewHandler(markets, leagues, logger), logger, httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            m,
		RequestIDs:         id.NewUUIDGenerator(),
	})

	a.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func (a *App) rawDataRepository(cfg config.Config) (rawdata.Repository, error) {
	if !cfg.DBEnabled {
		a.logger.Info("database disabled, keeping raw odds payloads in memory", "reason", "DB_ENABLED=false")
		return memory.NewRawDataRepository(), nil
	}

	db, err := openPostgres(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	return postgres.NewRawDataRepository(db), nil
}

func (a *App) boardCache(cfg config.Config, m *metrics.Metrics) match.BoardCache {
	if !cfg.CacheEnabled {
		a.logger.Info("board cache disabled", "reason", "CACHE_ENABLED=false")
		return nil
	}

	if cfg.CacheBackend == config.CacheBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		a.logger.Info("board cache uses redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB, "ttl", cfg.CacheTTL.String())
		return cacherepo.NewRedisBoardCache(client, cfg.CacheTTL, m, a.logger)
	}

	return cacherepo.NewMemoryBoardCache(basecache.NewStore[[]match.Board](cfg.CacheTTL), m)
}

func feedRequests(items []config.Feed) []feed.Request {
	out := make([]feed.Request, 0, len(items))
	for _, item := range items {
		out = append(out, feed.Request{
			SportKey: item.SportKey,
			Regions:  item.Regions,
			Markets:  item.Markets,
		})
	}
	return out
}

// Run serves HTTP and, when enabled, refreshes odds in the background until
// ctx ends or the server fails.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	var wg conc.WaitGroup
	if a.refresher != nil {
		wg.Go(func() {
			if err := a.refresher.Start(runCtx, a.refreshInterval); err != nil {
				a.logger.Error("odds refresher stopped", "error", err)
			}
		})
	}
	wg.Go(func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
		a.logger.Error("http server failed", "error", runErr)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("graceful shutdown: %w", err)
	}
	wg.Wait()

	a.logger.Info("http server stopped")
	return runErr
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
