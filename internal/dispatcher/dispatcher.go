package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrStopped       = errors.New("dispatcher stopped")
)

// Event is one inbound message from a connection.
type Event struct {
	Action    string
	ConnID    string
	Data      json.RawMessage
	Timestamp time.Time
}

// HandlerFunc processes an event.
type HandlerFunc func(Event) error

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	logged bool
}

// Logged adds debug logging around the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Dispatcher routes events to registered handlers. Events handed to Submit
// are queued and executed one at a time by Run, each to completion, so
// handlers never run concurrently with each other.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   Logger
	queue    chan Event
	done     chan struct{}
	stopOnce sync.Once

	queueSize metric.Int64ObservableGauge
	processed metric.Int64Counter
	failed    metric.Int64Counter
	dropped   metric.Int64Counter
}

// New creates a dispatcher whose queue holds up to queueSize pending events.
// Metrics go to the global OTel meter, a no-op unless a provider is set.
func New(logger Logger, queueSize int) (*Dispatcher, error) {
	if queueSize < 1 {
		return nil, fmt.Errorf("queue size must be positive, got %d", queueSize)
	}
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
		queue:    make(chan Event, queueSize),
		done:     make(chan struct{}),
	}

	m := meter()

	var err error

	d.queueSize, err = m.Int64ObservableGauge(
		"dispatcher.queue.size",
		metric.WithDescription("Current number of events waiting in the queue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queue size gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(d.queueSize, int64(len(d.queue)))
			return nil
		},
		d.queueSize,
	)
	if err != nil {
		return nil, fmt.Errorf("registering queue callback: %w", err)
	}

	d.processed, err = m.Int64Counter(
		"dispatcher.events.processed",
		metric.WithDescription("Total events processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	d.failed, err = m.Int64Counter(
		"dispatcher.events.failed",
		metric.WithDescription("Total events whose handler returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	d.dropped, err = m.Int64Counter(
		"dispatcher.events.dropped",
		metric.WithDescription("Total events discarded after the dispatcher stopped"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given action. Registration must happen
// before Run starts.
func (d *Dispatcher) Register(action string, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h
	if cfg.logged {
		handler = d.withLogging(action, handler)
	}

	d.handlers[action] = handler
}

// HasHandler returns true if a handler is registered for the action.
func (d *Dispatcher) HasHandler(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Dispatch runs the event's handler on the calling goroutine.
func (d *Dispatcher) Dispatch(e Event) error {
	h, ok := d.handlers[e.Action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, e.Action)
	}
	return h(e)
}

// Submit queues an event for Run. It blocks while the queue is full and
// fails with ErrStopped once the dispatcher has shut down.
func (d *Dispatcher) Submit(e Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	select {
	case <-d.done:
		d.dropped.Add(context.Background(), 1, metric.WithAttributes(attribute.String("action", e.Action)))
		return ErrStopped
	default:
	}
	select {
	case d.queue <- e:
		return nil
	case <-d.done:
		d.dropped.Add(context.Background(), 1, metric.WithAttributes(attribute.String("action", e.Action)))
		return ErrStopped
	}
}

// Run executes queued events until ctx is cancelled. Events still queued at
// that point are discarded.
func (d *Dispatcher) Run(ctx context.Context) {
	defer d.stopOnce.Do(func() { close(d.done) })

	for {
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case e := <-d.queue:
			d.handle(ctx, e)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, e Event) {
	attrs := metric.WithAttributes(attribute.String("action", e.Action))

	err := d.Dispatch(e)
	d.processed.Add(ctx, 1, attrs)
	if err == nil {
		return
	}
	d.failed.Add(ctx, 1, attrs)
	if errors.Is(err, ErrUnknownAction) {
		d.logger.Error("unhandled event", "action", e.Action, "conn", e.ConnID)
	}
}

func (d *Dispatcher) withLogging(action string, h HandlerFunc) HandlerFunc {
	return func(e Event) error {
		start := time.Now()
		d.logger.Debug("handling event", "action", action, "conn", e.ConnID, "bytes", len(e.Data))

		err := h(e)

		if err != nil {
			d.logger.Error("event failed", "action", action, "conn", e.ConnID, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("event complete", "action", action, "conn", e.ConnID, "duration", time.Since(start))
		}

		return err
	}
}
