package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sink receives published events. Implementations must be safe for
// concurrent use.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher stamps and forwards events to a sink. Synchronous by default;
// WithAsyncBuffer switches to a buffered background worker that drains on
// Close. A full buffer drops the event rather than blocking the registration
// path.
type Publisher struct {
	sink   Sink
	logger *slog.Logger

	async  bool
	inbox  chan Event
	done   chan struct{}
	closed sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous publishing with the given buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.async = true
		p.inbox = make(chan Event, size)
	}
}

// WithLogger sets the logger used for drop and sink-failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher constructs a Publisher over the given sink.
func NewPublisher(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{
		sink:   sink,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		go p.run()
	}
	return p
}

// Emit publishes an event, assigning an id and timestamp when unset.
// In async mode Emit never blocks; a full buffer drops the event.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if !p.async {
		return p.sink.Publish(ctx, event)
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		p.logger.Warn("event buffer full, dropping event",
			"kind", string(event.Kind),
			"key", event.Key().String(),
		)
		return nil
	}
}

// Close drains any buffered events and stops the background worker. Safe to
// call multiple times.
func (p *Publisher) Close() {
	p.closed.Do(func() {
		if p.async {
			close(p.inbox)
			<-p.done
		}
	})
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.inbox {
		if err := p.sink.Publish(context.Background(), event); err != nil {
			p.logger.Error("publish event failed",
				"kind", string(event.Kind),
				"key", event.Key().String(),
				"error", err,
			)
		}
	}
}
