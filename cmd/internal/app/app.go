// Package app wires the habitd server runtime: config, logging, storage,
// metrics, and HTTP routes.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"habitd/cmd/identity"
	authapi "habitd/cmd/internal/auth/api"
	"habitd/cmd/internal/auth/session"
	"habitd/cmd/internal/habits"

	"go.mongodb.org/mongo-driver/mongo"
)

// App is the habitd server runtime. It owns the Mongo client lifecycle
// and the fully wired HTTP handlers.
type App struct {
	cfg Config
	log Logger

	client *mongo.Client

	metrics *Metrics

	auth     *authapi.Handler
	habitAPI *habits.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel)
	}

	if err := ValidateSecurityConfig(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
	defer cancel()

	client, err := NewMongoClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDatabase)

	users, err := identity.NewMongoStore(db)
	if err != nil {
		return nil, disconnect(client, err)
	}
	if err := users.EnsureIndexes(ctx); err != nil {
		return nil, disconnect(client, err)
	}

	habitStore, err := habits.NewMongoStore(db)
	if err != nil {
		return nil, disconnect(client, err)
	}
	if err := habitStore.EnsureIndexes(ctx); err != nil {
		return nil, disconnect(client, err)
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		return nil, disconnect(client, err)
	}
	tokens, err := session.NewHS256Manager(sessCfg)
	if err != nil {
		return nil, disconnect(client, err)
	}

	authHandler, err := authapi.NewHandler(log, authapi.LoadConfigFromEnv(), users, tokens)
	if err != nil {
		return nil, disconnect(client, err)
	}

	habitHandler, err := habits.NewHandler(log, habitStore, authHandler.Gate())
	if err != nil {
		return nil, disconnect(client, err)
	}

	log.Info("db.connected", "database", cfg.MongoDatabase)

	return &App{
		cfg:      cfg,
		log:      log,
		client:   client,
		metrics:  NewMetrics(),
		auth:     authHandler,
		habitAPI: habitHandler,
	}, nil
}

func disconnect(client *mongo.Client, err error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = client.Disconnect(ctx)
	return err
}

// Run starts the HTTP server and blocks until context cancellation or a
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.client, a.metrics, a.auth, a.habitAPI)

	var handler http.Handler = mux
	handler = WithSecurityHeaders(handler)
	handler = WithCORS(handler, a.cfg, a.log)
	handler = WithRequestLogging(handler, a.log, a.metrics)
	handler = WithRequestID(handler)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if err := a.client.Disconnect(shutdownCtx); err != nil {
		a.log.Error("db.disconnect.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
