package core

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// timestampLayout matches the microsecond precision of the log lines.
const timestampLayout = "2006-01-02 15:04:05.000000"

// LogEntry records one successful add.
type LogEntry struct {
	ID   uuid.UUID
	Time time.Time
	Item string
	Qty  float64
}

// String renders the entry as "<timestamp>: Added <qty> of <item>".
func (e LogEntry) String() string {
	return fmt.Sprintf("%s: Added %s of %s", e.Time.Format(timestampLayout), FormatQuantity(e.Qty), e.Item)
}

// Log is an append-only, in-memory record of add operations.
// It is never persisted.
type Log struct {
	entries []LogEntry
	now     func() time.Time
}

// NewLog creates an empty log. A nil clock defaults to time.Now.
func NewLog(now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{now: now}
}

func (l *Log) append(item string, qty float64) LogEntry {
	if l.now == nil {
		l.now = time.Now
	}
	entry := LogEntry{
		ID:   uuid.New(),
		Time: l.now(),
		Item: item,
		Qty:  qty,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in append order.
func (l *Log) Entries() []LogEntry {
	return slices.Clone(l.entries)
}

// Lines returns the text form of every entry.
func (l *Log) Lines() []string {
	lines := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		lines = append(lines, e.String())
	}
	return lines
}
