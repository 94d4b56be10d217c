package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmynk/cosmocash/internal/storage"
)

// Worker writes documents on a background goroutine.
//
// Pending writes are coalesced per key: every document is a full snapshot of
// its collection, so only the latest one for a key needs to reach storage.
// Keys are written in the order they were first queued.
type Worker struct {
	store storage.Store
	opts  options

	mu      sync.Mutex
	pending map[string][]byte
	order   []string
	closed  bool

	notify   chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWorker creates a Worker over store and starts its goroutine.
func NewWorker(store storage.Store, opts ...Option) *Worker {
	w := &Worker{
		store:   store,
		opts:    buildOptions(opts),
		pending: make(map[string][]byte),
		notify:  make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// ErrWorkerClosed is reported for writes that arrive after Close.
var ErrWorkerClosed = errors.New("persist worker is closed")

// Write queues data for key, replacing any queued document for the same key.
// It never blocks on storage. After Close the document is dropped and
// reported to the error handler.
func (w *Worker) Write(key string, data []byte) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.opts.onError(key, ErrWorkerClosed)
		return
	}
	if _, queued := w.pending[key]; !queued {
		w.order = append(w.order, key)
	}
	w.pending[key] = data
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Close stops the worker after draining every queued write.
func (w *Worker) Close() error {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.stop)
	})
	<-w.done
	return nil
}

func (w *Worker) run() {
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			w.mu.Lock()
			remaining := len(w.order)
			w.mu.Unlock()
			slog.Info("Draining pending writes before shutdown", "remaining", remaining)
			w.drain()
			return
		case <-w.notify:
			w.drain()
		}
	}
}

func (w *Worker) drain() {
	for {
		w.mu.Lock()
		if len(w.order) == 0 {
			w.mu.Unlock()
			return
		}
		pending, order := w.pending, w.order
		w.pending = make(map[string][]byte)
		w.order = nil
		w.mu.Unlock()

		for _, key := range order {
			if err := w.store.Put(context.Background(), key, pending[key]); err != nil {
				w.opts.onError(key, err)
				continue
			}
			slog.Debug("Document persisted", "key", key, "bytes", len(pending[key]))
		}
	}
}
