package api

import (
	"github.com/tmeadows/templar/internal/config"
	"github.com/tmeadows/templar/internal/infrastructure"
	"github.com/tmeadows/templar/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination       pagination.Config
	MaxTemplateBytes int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Assets:    infra.Assets,
		},
		Pagination:       cfg.API.Pagination,
		MaxTemplateBytes: cfg.API.MaxTemplateSizeBytes(),
	}
}
