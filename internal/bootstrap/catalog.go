package bootstrap

import (
	"fmt"

	"github.com/osse101/Mivy_Go/internal/config"
	"github.com/osse101/Mivy_Go/internal/creator"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/validation"
)

// LoadCategoryCatalog validates the catalog named by CATEGORIES_PATH against
// its JSON schema, then parses it. An empty schema path skips validation.
func LoadCategoryCatalog(cfg *config.Config) (*creator.Catalog, error) {
	logger.Info(LogMsgLoadingCategories, "path", cfg.CategoriesPath)

	if cfg.CategoriesSchemaPath != "" {
		if err := validation.NewSchemaValidator().ValidateFile(cfg.CategoriesPath, cfg.CategoriesSchemaPath); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
		}
	}

	catalog, err := creator.LoadCatalog(cfg.CategoriesPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	logger.Info(LogMsgCategoriesLoaded,
		"version", catalog.Version(),
		"categories", len(catalog.All()))
	return catalog, nil
}
