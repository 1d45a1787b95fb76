package core

import "context"

// Repository defines the contract for loading and saving a whole inventory.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (JSON/YAML file, SQLite, ...).
type Repository interface {
	// Initialize ensures the underlying storage is usable (path checks, schema).
	Initialize(ctx context.Context) error

	// Load reads the stored inventory.
	// It returns an error matching ErrNoInventory when nothing has been stored yet.
	Load(ctx context.Context) (*Inventory, error)

	// Save replaces the stored inventory with inv.
	Save(ctx context.Context, inv *Inventory) error

	// Location names where the inventory lives, for diagnostics.
	Location() string
}

// Watchable is implemented by repositories that can report external changes.
type Watchable interface {
	// Watch emits an Event whenever a stored file matching pattern changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
