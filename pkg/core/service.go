package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Service handles the inventory workflow on top of a Repository.
// Recovered failures are printed as plain sentences to the output writer
// and also returned, so callers can tell them apart without parsing text.
type Service struct {
	repo   Repository
	logger *slog.Logger
	out    io.Writer
}

// NewService creates a new Service.
// A nil logger discards logs; a nil out discards diagnostics and reports.
func NewService(repo Repository, logger *slog.Logger, out io.Writer) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if out == nil {
		out = io.Discard
	}
	return &Service{repo: repo, logger: logger, out: out}
}

// Repository returns the underlying storage adapter.
func (s *Service) Repository() Repository {
	return s.repo
}

// Load reads the stored inventory.
// A missing store is reported and replaced by an empty inventory.
func (s *Service) Load(ctx context.Context) (*Inventory, error) {
	inv, err := s.repo.Load(ctx)
	if errors.Is(err, ErrNoInventory) {
		s.diagnose("%s not found. Starting with empty inventory.", s.repo.Location())
		s.logger.Warn("inventory missing, starting empty", "location", s.repo.Location())
		return NewInventory(), nil
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("inventory loaded", "location", s.repo.Location(), "items", inv.Len())
	return inv, nil
}

// Save persists inv, replacing the stored inventory.
func (s *Service) Save(ctx context.Context, inv *Inventory) error {
	if err := s.repo.Save(ctx, inv); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	s.logger.Debug("inventory saved", "location", s.repo.Location(), "items", inv.Len())
	return nil
}

// Add adds qty of item to inv and records it in log (nil for a throwaway log).
func (s *Service) Add(inv *Inventory, item string, qty float64, log *Log) error {
	if log == nil {
		log = NewLog(nil)
	}
	if err := inv.Add(item, qty, log); err != nil {
		s.Reject(err, item)
		return err
	}

	entry := log.entries[len(log.entries)-1]
	s.logger.Debug("item added", "id", entry.ID, "item", item, "qty", qty, "total", inv.Qty(item))
	return nil
}

// Remove takes qty of item out of inv.
func (s *Service) Remove(inv *Inventory, item string, qty float64) error {
	if err := inv.Remove(item, qty); err != nil {
		s.Reject(err, item)
		return err
	}
	s.logger.Debug("item removed", "item", item, "qty", qty, "remaining", inv.Qty(item))
	return nil
}

// Report prints a blank line, the header, then every item and its quantity in iteration order.
func (s *Service) Report(inv *Inventory) {
	fmt.Fprintln(s.out, "\nItems Report:")
	for name, qty := range inv.All() {
		fmt.Fprintf(s.out, "%s -> %s\n", name, FormatQuantity(qty))
	}
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// Reject prints the diagnostic sentence for a recoverable error about item.
// Other errors are left to the caller.
func (s *Service) Reject(err error, item string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		s.diagnose("Invalid item name or quantity type.")
	case errors.Is(err, ErrNotFound):
		s.diagnose("Item '%s' not found in inventory.", item)
	default:
		return
	}
	s.logger.Warn("operation skipped", "item", item, "error", err)
}

func (s *Service) diagnose(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
