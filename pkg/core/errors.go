package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrInvalidInput is returned when an item name is empty or a quantity is not a finite number.
	ErrInvalidInput = errors.New("invalid item name or quantity type")
	// ErrNotFound is returned when removing an item the inventory does not hold.
	ErrNotFound = errors.New("item not found in inventory")
	// ErrNoInventory is returned by repositories when the backing file does not exist yet.
	ErrNoInventory = errors.New("inventory not found")
	ErrReadOnly    = errors.New("repository is in read-only mode")
)

// FormatError reports inventory content that could not be decoded.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed inventory %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether err is a reported-and-skipped failure
// (bad input, unknown item, missing file) rather than a fatal one.
func Recoverable(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNoInventory)
}
