package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/Aniket-7751/POS-sub001/api/responses"
	"github.com/Aniket-7751/POS-sub001/pkg/config"
	pkgerrors "github.com/Aniket-7751/POS-sub001/pkg/errors"
	"github.com/Aniket-7751/POS-sub001/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger is the health-probe surface each backing dependency exposes.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-POS-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes every backing dependency and aggregates the failures so
// a single response names everything that is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-POS-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var probeErr error
		failing := make([]string, 0, len(deps))
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				probeErr = multierr.Append(probeErr, fmt.Errorf("%s: %w", name, err))
				failing = append(failing, name)
			}
		}

		if probeErr != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, probeErr, "dependencies unavailable").
				WithDetails(map[string]any{"failing": failing})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
