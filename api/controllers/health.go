package controllers

import (
	"context"
	"net/http"

	"github.com/Abhi-engg/farmstand-backend/api/responses"
	"github.com/Abhi-engg/farmstand-backend/pkg/config"
	"github.com/Abhi-engg/farmstand-backend/pkg/db"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
	pkgredis "github.com/Abhi-engg/farmstand-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Farmstand-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each hard dependency and reports which ones are up.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Farmstand-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		checks["database"] = pingStatus(r.Context(), logg, "database", dbP)
		checks["redis"] = pingStatus(r.Context(), logg, "redis", redisP)
		for _, status := range checks {
			if status != "ok" {
				healthy = false
			}
		}

		payload := map[string]any{"status": "ready", "checks": checks}
		if !healthy {
			payload["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, payload)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

func pingStatus(ctx context.Context, logg *logger.Logger, name string, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		if logg != nil {
			logg.Error(ctx, "health."+name, err)
		}
		return "unavailable"
	}
	return "ok"
}
