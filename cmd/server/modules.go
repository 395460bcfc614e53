package main

import (
	"context"
	"net/http"

	"github.com/JaimeStill/formatdiff/internal/api"
	"github.com/JaimeStill/formatdiff/internal/config"
	"github.com/JaimeStill/formatdiff/internal/infrastructure"
	"github.com/JaimeStill/formatdiff/pkg/handlers"
	"github.com/JaimeStill/formatdiff/pkg/lifecycle"
	"github.com/JaimeStill/formatdiff/pkg/module"
)

// Modules holds the mounted HTTP modules.
type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure, version string) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	router.HandleNative("GET /readyz", readyz(infra.Lifecycle, infra.Database))

	return router
}

type checker interface {
	Check(ctx context.Context) error
}

// readyz reports 503 until every checker is ready. Checkers with a Check
// method re-ping their dependency on each request.
func readyz(checkers ...lifecycle.ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, c := range checkers {
			if p, ok := c.(checker); ok {
				p.Check(r.Context())
			}
			if !c.Ready() {
				handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
				return
			}
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
