package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/stock/pkg/core"
)

// Repository implements core.Repository on top of a single inventory file.
type Repository struct {
	Path   string
	config Config
	ser    Serializer

	mu            sync.RWMutex
	watcherActive bool
	lastLoad      *time.Time
	lastSave      *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	Logger       *slog.Logger
	ReadOnly     bool
	Perm         os.FileMode // Mode of written files. Zero means 0644.
	Serializer   Serializer  // Overrides the extension-based choice.
	EventBuffer  int         // Capacity of the watch channel. Zero means 100.
	ErrorHandler func(error) // Receives runtime watcher failures.
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Path == "" {
		config.Path = core.DefaultPath
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 100
	}
	ser := config.Serializer
	if ser == nil {
		ser = SerializerFor(config.Path)
	}
	return &Repository{
		Path:   config.Path,
		config: config,
		ser:    ser,
	}
}

// Initialize checks that the path is usable as an inventory file.
// A missing file is fine; a directory in its place is not.
func (r *Repository) Initialize(ctx context.Context) error {
	info, err := os.Stat(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat inventory: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("inventory path is a directory: %s", r.Path)
	}
	return nil
}

// Location returns the inventory file path.
func (r *Repository) Location() string {
	return r.Path
}

// Load reads and decodes the inventory file.
func (r *Repository) Load(ctx context.Context) (*core.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", r.Path, core.ErrNoInventory)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory: %w", err)
	}
	defer f.Close()

	inv, err := r.ser.Decode(f)
	if err != nil {
		return nil, &core.FormatError{Path: r.Path, Err: err}
	}

	r.debug("inventory read", "path", r.Path, "items", inv.Len())
	r.mu.Lock()
	now := time.Now()
	r.lastLoad = &now
	r.mu.Unlock()
	return inv, nil
}

// Save encodes inv and replaces the inventory file atomically.
func (r *Repository) Save(ctx context.Context, inv *core.Inventory) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := r.ser.Encode(inv)
	if err != nil {
		return fmt.Errorf("failed to serialize inventory: %w", err)
	}

	if err := writeFileAtomic(r.Path, data, r.config.Perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	r.debug("inventory written", "path", r.Path, "bytes", len(data))
	r.mu.Lock()
	now := time.Now()
	r.lastSave = &now
	r.mu.Unlock()
	return nil
}

func (r *Repository) dir() string {
	return filepath.Dir(r.Path)
}

func (r *Repository) debug(msg string, args ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, args...)
	}
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
