package stock

import (
	"io"
	"log/slog"

	"github.com/aretw0/stock/internal/platform"
	"github.com/aretw0/stock/pkg/adapters/fs"
	"github.com/aretw0/stock/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Inventory is a public alias for the ordered item -> quantity mapping.
type Inventory = core.Inventory

// Log is a public alias for the in-memory addition log.
type Log = core.Log

// Service is a public alias for the inventory service.
type Service = core.Service

const (
	DefaultPath      = core.DefaultPath
	DefaultThreshold = core.DefaultThreshold
)

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return core.NewInventory()
}

// NewLog returns an empty addition log stamped with the wall clock.
func NewLog() *Log {
	return core.NewLog(nil)
}

// --- Configuration ---

// Option defines a functional option for configuring the inventory store.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithSerializer overrides the file format of the filesystem adapter.
func WithSerializer(s fs.Serializer) Option {
	return platform.WithSerializer(s)
}

// WithEventBuffer sets the capacity of the watch event channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithOutput sets where diagnostics and reports are printed.
func WithOutput(w io.Writer) Option {
	return platform.WithOutput(w)
}

// --- Factory ---

// New creates a new inventory Service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Utils ---

// FindInventory looks upwards from startDir for an inventory file called name.
func FindInventory(startDir, name string) (string, error) {
	return platform.FindInventory(startDir, name)
}
