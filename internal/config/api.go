package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/formatdiff/pkg/formatting"
	"github.com/JaimeStill/formatdiff/pkg/middleware"
	"github.com/JaimeStill/formatdiff/pkg/openapi"
	"github.com/JaimeStill/formatdiff/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "FORMATDIFF_CORS_ENABLED",
	Origins:          "FORMATDIFF_CORS_ORIGINS",
	AllowedMethods:   "FORMATDIFF_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "FORMATDIFF_CORS_ALLOWED_HEADERS",
	AllowCredentials: "FORMATDIFF_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "FORMATDIFF_CORS_MAX_AGE",
}

var authEnv = &middleware.AuthEnv{
	Enabled:   "FORMATDIFF_AUTH_ENABLED",
	IssuerURL: "FORMATDIFF_AUTH_ISSUER_URL",
	Audience:  "FORMATDIFF_AUTH_AUDIENCE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "FORMATDIFF_OPENAPI_TITLE",
	Description: "FORMATDIFF_OPENAPI_DESCRIPTION",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "FORMATDIFF_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "FORMATDIFF_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing and upload limits along with the nested
// middleware and document settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Auth          middleware.AuthConfig `toml:"auth"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes, falling back to 50MB
// when the value does not parse.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, auth, and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Auth.Merge(&overlay.Auth)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("FORMATDIFF_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("FORMATDIFF_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
