package app

import (
	"net/http"
	"time"

	authapi "habitd/cmd/internal/auth/api"
	"habitd/cmd/internal/habits"

	"go.mongodb.org/mongo-driver/mongo"
)

func registerHTTP(
	mux *http.ServeMux,
	log Logger,
	cfg Config,
	client *mongo.Client,
	metrics *Metrics,
	auth *authapi.Handler,
	habitAPI *habits.Handler,
) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.ReadinessRequireDB && client != nil {
			if err := PingMongo(r.Context(), client, 2*time.Second); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				log.Info("readyz.db.not_ready", "err", err)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready\n"))
	})

	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}

	if auth != nil {
		auth.Register(mux)
	}
	if habitAPI != nil {
		habitAPI.Register(mux)
	}
}
