package platform

import (
	"io"
	"log/slog"

	"github.com/aretw0/stock/pkg/adapters/fs"
	"github.com/aretw0/stock/pkg/core"
)

// options holds the internal configuration for the stock service.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	adapter      string
	readOnly     bool
	serializer   fs.Serializer
	eventBuffer  int
	errorHandler func(error)
	output       io.Writer
}

// Option defines a functional option for configuring the inventory store.
type Option func(*options)

// defaultOptions returns the default configuration.
// An empty adapter means "pick by file extension".
func defaultOptions() *options {
	return &options{}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
// By default the adapter is chosen from the inventory file extension.
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReadOnly enables read-only mode. Save returns core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock).
// If provided, adapter selection is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithSerializer overrides the extension-based file format of the fs adapter.
func WithSerializer(s fs.Serializer) Option {
	return func(o *options) {
		o.serializer = s
	}
}

// WithEventBuffer sets the capacity of the watch event channel.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithOutput sets where diagnostics and reports are printed. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}
