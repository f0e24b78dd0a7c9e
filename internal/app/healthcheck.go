package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/cinetrack/api"
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"

	healthcheckTimeout = 2 * time.Second
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := statusUp
	code := http.StatusOK

	if err := app.pingBackends(r.Context()); err != nil {
		app.contextGetLogger(r).Error("healthcheck failed", "error", err)

		status = statusDown
		code = http.StatusServiceUnavailable
	}

	resp := api.HealthcheckResponse{
		Status: status,
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
	}

	err := app.writeJSON(w, code, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// pingBackends checks the stores the application was started with. The
// in-memory engine has nothing to ping.
func (app *Application) pingBackends(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthcheckTimeout)
	defer cancel()

	if app.db != nil {
		if err := app.db.Ping(ctx); err != nil {
			return err
		}
	}

	if app.redis != nil {
		if err := app.redis.Ping(ctx).Err(); err != nil {
			return err
		}
	}

	return nil
}

func (app *Application) GetOpenAPIDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := api.GetSwagger()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, doc, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
