package cmd

import (
	"log/slog"

	"github.com/dukex/hrflow/pkg/catalog"
)

// NewCatalog loads the automation catalog at path, or the built-in one when path is empty.
func NewCatalog(logger *slog.Logger, path string) (catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}

	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded automation catalog", "path", path)

	return c, nil
}
