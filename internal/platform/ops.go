package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/stock/pkg/adapters/fs"
	"github.com/aretw0/stock/pkg/adapters/sqlite"
	"github.com/aretw0/stock/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
)

// Init builds the repository for the inventory at path and runs its Initialize.
// An empty path means core.DefaultPath.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := applyOptions(opts)

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	if path == "" {
		path = core.DefaultPath
	}

	// 2. Initialize based on Adapter
	var repo core.Repository
	switch adapter := adapterFor(path, o.adapter); adapter {
	case AdapterFS:
		repo = fs.NewRepository(fs.Config{
			Path:         path,
			Logger:       o.logger,
			ReadOnly:     o.readOnly,
			Serializer:   o.serializer,
			EventBuffer:  o.eventBuffer,
			ErrorHandler: o.errorHandler,
		})
	case AdapterSQLite:
		repo = sqlite.NewRepository(sqlite.Config{
			Path:     path,
			Logger:   o.logger,
			ReadOnly: o.readOnly,
		})
	default:
		return nil, fmt.Errorf("unknown adapter: %s", adapter)
	}

	if o.logger != nil {
		o.logger.Debug("repository selected", "path", path, "read_only", o.readOnly)
	}

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// adapterFor returns the explicit adapter name, or guesses it from the extension.
func adapterFor(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return AdapterSQLite
	default:
		return AdapterFS
	}
}
