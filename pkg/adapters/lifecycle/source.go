// Package lifecycle exposes inventory change events as a lifecycle.Source,
// so a watch can be driven by anything that consumes lifecycle sources.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/stock/pkg/core"
)

// changeSource relays core.Event values from a repository watch.
type changeSource struct {
	changes <-chan core.Event
	out     chan lifecycle.Event
}

// NewSource relays changes as lifecycle events once started.
// Events closes when changes closes or the Start context ends.
func NewSource(changes <-chan core.Event) lifecycle.Source {
	return &changeSource{
		changes: changes,
		out:     make(chan lifecycle.Event),
	}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start launches the relay under lifecycle supervision and returns at once.
func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.relay)
	return nil
}

func (s *changeSource) relay(ctx context.Context) error {
	defer close(s.out)
	for {
		var change core.Event
		var ok bool
		select {
		case change, ok = <-s.changes:
			if !ok {
				return nil
			}
		case <-ctx.Done():
			return nil
		}

		if !s.deliver(ctx, change) {
			return nil
		}
	}
}

// deliver hands one change to the consumer, giving up when ctx ends.
func (s *changeSource) deliver(ctx context.Context, change core.Event) bool {
	select {
	case s.out <- change:
		return true
	case <-ctx.Done():
		return false
	}
}
