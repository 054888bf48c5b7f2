package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/project-board/internal/events"
)

var (
	// ErrQueueFull is returned to the publisher when the worker is at capacity; the event is dropped.
	ErrQueueFull = errors.New("activity queue full")
	// ErrStopped is returned for events published after Stop.
	ErrStopped = errors.New("activity worker stopped")
)

// EventRecorder consumes board events.
type EventRecorder interface {
	Handle(ctx context.Context, event events.Event) error
}

// ActivityWorker records board events on its own goroutine so journal and
// broadcast I/O never runs inside a request.
type ActivityWorker struct {
	recorder EventRecorder
	logger   *zap.Logger
	queue    chan events.Event
	done     chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewActivityWorker returns a worker buffering up to queueSize events.
func NewActivityWorker(recorder EventRecorder, logger *zap.Logger, queueSize int) *ActivityWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &ActivityWorker{
		recorder: recorder,
		logger:   logger,
		queue:    make(chan events.Event, queueSize),
		done:     make(chan struct{}),
	}
}

// Subscribe routes the board's create events into the worker queue.
func (w *ActivityWorker) Subscribe(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventUserCreated, w.enqueue)
	dispatcher.Subscribe(events.EventProjectCreated, w.enqueue)
}

// Start launches the consuming goroutine. Calling it more than once is a no-op.
func (w *ActivityWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true
	go w.run()
}

// Stop rejects new events and waits until queued ones are recorded or ctx ends.
func (w *ActivityWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
	started := w.started
	w.mu.Unlock()

	if !started {
		return nil
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *ActivityWorker) enqueue(_ context.Context, event events.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrStopped
	}
	select {
	case w.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *ActivityWorker) run() {
	defer close(w.done)
	for event := range w.queue {
		if err := w.recorder.Handle(context.Background(), event); err != nil {
			w.logger.Debug("activity not fully recorded", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
}
