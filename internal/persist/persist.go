// Package persist moves serialized household documents into a storage.Store.
//
// Writes are fire-and-forget: a failed write is reported to the error
// handler and otherwise ignored. The in-memory state stays authoritative
// and the next successful write of the same key resynchronizes storage.
package persist

import (
	"context"
	"log/slog"

	"github.com/mmynk/cosmocash/internal/storage"
)

// Writer accepts full documents keyed by collection name.
type Writer interface {
	Write(key string, data []byte)
}

// ErrorHandler observes failed writes.
type ErrorHandler func(key string, err error)

// Option configures a writer.
type Option func(*options)

type options struct {
	onError ErrorHandler
}

// WithErrorHandler adds h to the handlers run on a failed write. The
// default handler, which logs at error level, always runs.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		prev := o.onError
		o.onError = func(key string, err error) {
			prev(key, err)
			h(key, err)
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{onError: logError}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func logError(key string, err error) {
	slog.Error("Failed to persist document", "key", key, "error", err)
}

// Direct writes synchronously on the caller's goroutine.
type Direct struct {
	store storage.Store
	opts  options
}

// NewDirect creates a synchronous writer over store.
func NewDirect(store storage.Store, opts ...Option) *Direct {
	return &Direct{store: store, opts: buildOptions(opts)}
}

// Write stores data under key, reporting but not returning failures.
func (d *Direct) Write(key string, data []byte) {
	if err := d.store.Put(context.Background(), key, data); err != nil {
		d.opts.onError(key, err)
		return
	}
	slog.Debug("Document persisted", "key", key, "bytes", len(data))
}
