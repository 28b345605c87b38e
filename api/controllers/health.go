package controllers

import (
	"context"
	"net/http"

	"github.com/wildwestwallart/storefront-backend/api/responses"
	"github.com/wildwestwallart/storefront-backend/pkg/config"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

// Pinger is anything that can confirm its backing connection is alive.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WWA-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports per-dependency status. The store stays up without
// Redis or records credentials, so degraded dependencies don't fail the
// check; they're reported for the operator to see.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WWA-Env", cfg.App.Env)

		deps := map[string]string{}

		if cfg.Records.HasCredentials() {
			deps["records"] = "configured"
		} else {
			deps["records"] = "missing_credentials"
		}

		switch {
		case redisClient == nil:
			deps["redis"] = "disabled"
		default:
			if err := redisClient.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "health.redis_ping_failed", err)
				}
				deps["redis"] = "unreachable"
			} else {
				deps["redis"] = "ok"
			}
		}

		responses.WriteSuccess(w, map[string]any{
			"status":       "ready",
			"dependencies": deps,
		})
	}
}
