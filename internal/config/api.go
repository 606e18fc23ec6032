package config

import (
	"fmt"
	"os"

	"github.com/tmeadows/templar/pkg/formatting"
	"github.com/tmeadows/templar/pkg/middleware"
	"github.com/tmeadows/templar/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "TEMPLAR_CORS_ENABLED",
	Origins:          "TEMPLAR_CORS_ORIGINS",
	AllowedMethods:   "TEMPLAR_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "TEMPLAR_CORS_ALLOWED_HEADERS",
	AllowCredentials: "TEMPLAR_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "TEMPLAR_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "TEMPLAR_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "TEMPLAR_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath        string                `toml:"base_path"`
	MaxTemplateSize string                `toml:"max_template_size"`
	CORS            middleware.CORSConfig `toml:"cors"`
	Pagination      pagination.Config     `toml:"pagination"`
}

func (c *APIConfig) MaxTemplateSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxTemplateSize)
	if err != nil {
		return 1024 * 1024 // 1MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxTemplateSize != "" {
		c.MaxTemplateSize = overlay.MaxTemplateSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxTemplateSize == "" {
		c.MaxTemplateSize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("TEMPLAR_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("TEMPLAR_API_MAX_TEMPLATE_SIZE"); v != "" {
		c.MaxTemplateSize = v
	}
}
