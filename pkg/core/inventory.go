// Package core holds the inventory domain: the ordered item/quantity mapping,
// the add log, the storage contract and the service that reports diagnostics.
package core

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

const (
	// DefaultPath is the inventory file used when none is configured.
	DefaultPath = "inventory.json"
	// DefaultThreshold is the quantity below which an item counts as low stock.
	DefaultThreshold = 5
)

// Inventory maps item names to quantities.
// Insertion order is kept and drives LowItems, reports and persistence.
// The zero value is an empty inventory ready to use.
type Inventory struct {
	names []string
	qty   map[string]float64
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{qty: make(map[string]float64)}
}

// Len returns the number of items held.
func (inv *Inventory) Len() int {
	return len(inv.names)
}

// Names returns the item names in iteration order.
func (inv *Inventory) Names() []string {
	return slices.Clone(inv.names)
}

// Has reports whether the item is present.
func (inv *Inventory) Has(item string) bool {
	_, ok := inv.qty[item]
	return ok
}

// Qty returns the quantity of item, or zero if it is absent.
func (inv *Inventory) Qty(item string) float64 {
	return inv.qty[item]
}

// Set stores qty for item without validation, appending new names at the end.
// Decoders use it to rebuild an inventory in file order.
func (inv *Inventory) Set(item string, qty float64) {
	if inv.qty == nil {
		inv.qty = make(map[string]float64)
	}
	if _, ok := inv.qty[item]; !ok {
		inv.names = append(inv.names, item)
	}
	inv.qty[item] = qty
}

func (inv *Inventory) delete(item string) {
	delete(inv.qty, item)
	if i := slices.Index(inv.names, item); i >= 0 {
		inv.names = slices.Delete(inv.names, i, i+1)
	}
}

// Add increases the quantity of item by qty, creating the entry if needed,
// and appends a record to log. A nil log discards the record.
func (inv *Inventory) Add(item string, qty float64, log *Log) error {
	if err := validate(item, qty); err != nil {
		return err
	}

	total := inv.qty[item] + qty
	if !finite(total) {
		return fmt.Errorf("add %q: total overflows: %w", item, ErrInvalidInput)
	}

	inv.Set(item, total)
	if log == nil {
		log = NewLog(nil)
	}
	log.append(item, qty)
	return nil
}

// Remove decreases the quantity of item by qty.
// An item whose quantity drops to zero or below is deleted.
func (inv *Inventory) Remove(item string, qty float64) error {
	if err := validate(item, qty); err != nil {
		return err
	}

	current, ok := inv.qty[item]
	if !ok {
		return fmt.Errorf("remove %q: %w", item, ErrNotFound)
	}

	remaining := current - qty
	if !finite(remaining) {
		return fmt.Errorf("remove %q: remainder overflows: %w", item, ErrInvalidInput)
	}
	if remaining <= 0 {
		inv.delete(item)
	} else {
		inv.qty[item] = remaining
	}
	return nil
}

// LowItems returns the names whose quantity is strictly below threshold, in iteration order.
func (inv *Inventory) LowItems(threshold float64) []string {
	low := []string{}
	for _, name := range inv.names {
		if inv.qty[name] < threshold {
			low = append(low, name)
		}
	}
	return low
}

// All iterates over items and quantities in iteration order.
func (inv *Inventory) All() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, name := range inv.names {
			if !yield(name, inv.qty[name]) {
				return
			}
		}
	}
}

// Map returns a copy of the mapping. Order is lost.
func (inv *Inventory) Map() map[string]float64 {
	m := make(map[string]float64, len(inv.names))
	for name, qty := range inv.All() {
		m[name] = qty
	}
	return m
}

// Clone returns an independent copy.
func (inv *Inventory) Clone() *Inventory {
	c := NewInventory()
	for name, qty := range inv.All() {
		c.Set(name, qty)
	}
	return c
}

// Equal reports whether both inventories hold the same items and quantities, ignoring order.
func (inv *Inventory) Equal(other *Inventory) bool {
	if inv.Len() != other.Len() {
		return false
	}
	for name, qty := range inv.All() {
		q, ok := other.qty[name]
		if !ok || q != qty {
			return false
		}
	}
	return true
}

// validate accepts any non-empty name, whitespace included, and a finite quantity.
func validate(item string, qty float64) error {
	if item == "" || !finite(qty) {
		return ErrInvalidInput
	}
	return nil
}

func finite(q float64) bool {
	return !math.IsNaN(q) && !math.IsInf(q, 0)
}
