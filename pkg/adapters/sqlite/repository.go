// Package sqlite stores an inventory in a single-file SQLite database.
//
// Items live in one table, ordered by an explicit position column:
//
//	CREATE TABLE inventory (position INTEGER, name TEXT PRIMARY KEY, quantity REAL)
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/aretw0/stock/pkg/core"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const (
	createTable = `CREATE TABLE IF NOT EXISTS inventory (
	position INTEGER NOT NULL,
	name     TEXT PRIMARY KEY,
	quantity REAL NOT NULL
)`
	selectItems = `SELECT name, quantity FROM inventory ORDER BY position`
	deleteItems = `DELETE FROM inventory`
	insertItem  = `INSERT INTO inventory (position, name, quantity) VALUES (?, ?, ?)`
	hasTable    = `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'inventory'`
)

// Config holds the configuration for the SQLite repository.
type Config struct {
	Path     string
	Logger   *slog.Logger
	ReadOnly bool
}

// Repository implements core.Repository on top of a SQLite database file.
// Each operation opens and closes its own connection.
type Repository struct {
	config Config

	mu       sync.RWMutex
	lastLoad *time.Time
	lastSave *time.Time
}

// NewRepository creates a new SQLite-backed repository.
func NewRepository(config Config) *Repository {
	return &Repository{config: config}
}

// Initialize checks that the database path is not a directory.
// A missing database is created on the first Save.
func (r *Repository) Initialize(ctx context.Context) error {
	info, err := os.Stat(r.config.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat database: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", r.config.Path)
	}
	return nil
}

// Location returns the database file path.
func (r *Repository) Location() string {
	return r.config.Path
}

// Load reads all items in insertion order.
func (r *Repository) Load(ctx context.Context) (*core.Inventory, error) {
	// sql.Open would create the file.
	if _, err := os.Stat(r.config.Path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", r.config.Path, core.ErrNoInventory)
	}

	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var tables int
	if err := db.QueryRowContext(ctx, hasTable).Scan(&tables); err != nil {
		return nil, &core.FormatError{Path: r.config.Path, Err: err}
	}
	if tables == 0 {
		return nil, &core.FormatError{Path: r.config.Path, Err: errors.New("missing inventory table")}
	}

	rows, err := db.QueryContext(ctx, selectItems)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	inv := core.NewInventory()
	for rows.Next() {
		var name string
		var qty sql.NullFloat64
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, &core.FormatError{Path: r.config.Path, Err: err}
		}
		if !qty.Valid {
			return nil, &core.FormatError{Path: r.config.Path, Err: fmt.Errorf("quantity of %q is null", name)}
		}
		inv.Set(name, qty.Float64)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	r.debug("inventory read", "path", r.config.Path, "items", inv.Len())
	r.mu.Lock()
	now := time.Now()
	r.lastLoad = &now
	r.mu.Unlock()
	return inv, nil
}

// Save replaces every row in a single transaction.
func (r *Repository) Save(ctx context.Context, inv *core.Inventory) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	db, err := r.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteItems); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertItem)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	position := 0
	for name, qty := range inv.All() {
		if _, err := stmt.ExecContext(ctx, position, name, qty); err != nil {
			return fmt.Errorf("failed to insert %q: %w", name, err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit inventory: %w", err)
	}

	r.debug("inventory written", "path", r.config.Path, "items", position)
	r.mu.Lock()
	now := time.Now()
	r.lastSave = &now
	r.mu.Unlock()
	return nil
}

func (r *Repository) open() (*sql.DB, error) {
	db, err := sql.Open(DriverName, r.config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func (r *Repository) debug(msg string, args ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, args...)
	}
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path     string     `json:"path"`
	ReadOnly bool       `json:"read_only"`
	LastLoad *time.Time `json:"last_load,omitempty"`
	LastSave *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{
		Path:     r.config.Path,
		ReadOnly: r.config.ReadOnly,
		LastLoad: r.lastLoad,
		LastSave: r.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
