package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/league-portal/external/webhook"
	"github.com/riskibarqy/league-portal/internal/config"
	"github.com/riskibarqy/league-portal/internal/domain/match"
	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
	"github.com/riskibarqy/league-portal/internal/infrastructure/live"
	cacherepo "github.com/riskibarqy/league-portal/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-portal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-portal/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-portal/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-portal/internal/platform/cache"
	"github.com/riskibarqy/league-portal/internal/platform/id"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/riskibarqy/league-portal/internal/usecase"
)

// App owns the HTTP server and the background pieces that live as long as
// it does.
type App struct {
	server  *http.Server
	hub     *live.Hub
	webhook *webhook.Publisher
	db      *sqlx.DB
	logger  *logging.Logger
}

// backend is the storage a run of the service reads and writes.
type backend struct {
	stores  rosterchange.Stores
	matches match.Repository
	tx      rosterchange.Transactor
	db      *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, err := openBackend(cfg, logger)
	if err != nil {
		return nil, err
	}

	sports := store.stores.Sports
	var bracketCache *cache.Store
	if cfg.CacheEnabled {
		bracketCache = cache.NewStore(cfg.CacheTTL)
		sports = cacherepo.NewSportRepository(sports, cache.NewStore(cfg.CacheTTL))
	}

	bracketSvc := usecase.NewBracketService(store.matches, sports, bracketCache, cfg.BracketWorkers, logger)
	notifiers := usecase.ChangeNotifiers{bracketSvc}

	var hub *live.Hub
	var subscriber httpapi.LiveSubscriber
	if cfg.LiveUpdatesEnabled {
		hub = live.NewHub(cfg.CORSAllowedOrigins, logger)
		subscriber = hub
		notifiers = append(notifiers, hub)
	}

	var publisher *webhook.Publisher
	if cfg.ResultsWebhookURL != "" {
		publisher, err = webhook.NewPublisher(webhook.Config{
			URL:     cfg.ResultsWebhookURL,
			Token:   cfg.ResultsWebhookToken,
			Timeout: cfg.ResultsWebhookTimeout,
			Logger:  logger,
		})
		if err != nil {
			closeDB(store.db, logger)
			return nil, fmt.Errorf("build results webhook: %w", err)
		}
		notifiers = append(notifiers, publisher)
	}

	scoreSvc := usecase.NewScoreService(store.matches, notifiers, logger)
	eligibilitySvc := usecase.NewEligibilityService(store.stores.Players, sports, store.stores.Registrations)
	rosterSvc := usecase.NewRosterChangeService(store.tx, store.stores.Requests, id.NewUUIDGenerator(), logger)

	handler := httpapi.NewHandler(bracketSvc, scoreSvc, eligibilitySvc, rosterSvc, subscriber, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminAPIToken)

	return &App{
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		hub:     hub,
		webhook: publisher,
		db:      store.db,
		logger:  logger,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled or the listener fails. It does not shut
// the server down; call Shutdown for that.
func (a *App) Run(ctx context.Context) error {
	if a.hub != nil {
		go a.hub.Run(ctx)
	}

	a.logger.Info("http server starting", "addr", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if a.webhook != nil {
		if closeErr := a.webhook.Close(); closeErr != nil {
			a.logger.Warn("close results webhook", "error", closeErr)
		}
	}
	closeDB(a.db, a.logger)
	return err
}

func openBackend(cfg config.Config, logger *logging.Logger) (backend, error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return backend{}, err
		}
		logger.Info("storage backend ready", "backend", config.StorePostgres, "db_name", dbNameFromURL(cfg.DBURL))
		return backend{
			stores:  postgres.Stores(db),
			matches: postgres.NewMatchRepository(db),
			tx:      postgres.NewTransactor(db),
			db:      db,
		}, nil
	default:
		store := memory.NewStore(memory.DefaultSeed())
		logger.Info("storage backend ready", "backend", config.StoreMemory)
		return backend{
			stores:  store.Stores(),
			matches: store.Matches(),
			tx:      store,
		}, nil
	}
}
