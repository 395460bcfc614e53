package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/formatdiff/internal/config"
	"github.com/JaimeStill/formatdiff/pkg/openapi"
	"github.com/JaimeStill/formatdiff/pkg/routes"
)

// registerRoutes mounts the domain routes and GET /openapi.json, which
// describes them.
func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) error {
	maxUpload := cfg.API.MaxUploadSizeBytes()

	groups := []routes.Group{
		domain.Templates.Handler(maxUpload).Routes(),
		domain.Comparisons.Handler(maxUpload).Routes(),
	}
	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	routes.Document(spec, groups...)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	return data, nil
}
