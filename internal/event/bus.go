// Package event carries domain events from the debt write path to interested
// subscribers (currently the sales report recomputation). Dispatch is
// in-process and synchronous, but failure-isolated: a handler error or panic
// is logged and never propagated to the publisher, so reporting can never fail
// a debt write.
package event

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jeffersontgc/credistore-be/internal/model"
)

// Event names — the only wire contract the core emits.
const (
	DebtCreated       = "debt-created"
	DebtStatusUpdated = "debt-status-updated"
	DebtCancelled     = "debt-cancelled"
)

// DebtEvent is the payload carried by every debt event. PreviousStatus is set
// only for debt-status-updated.
type DebtEvent struct {
	Name           string
	Debt           *model.Debt
	PreviousStatus *model.DebtStatus
}

// Handler consumes one event. A returned error is logged by the bus, not
// propagated.
type Handler func(ctx context.Context, evt DebtEvent) error

// Bus is the injectable message-passing interface. Subscribers register per
// event name; Publish dispatches to every handler of that name in order.
type Bus interface {
	Subscribe(name string, h Handler)
	Publish(ctx context.Context, evt DebtEvent)
}

type memoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus returns the in-process synchronous bus.
func NewBus() Bus {
	return &memoryBus{handlers: make(map[string][]Handler)}
}

func (b *memoryBus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

func (b *memoryBus) Publish(ctx context.Context, evt DebtEvent) {
	b.mu.RLock()
	handlers := b.handlers[evt.Name]
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(ctx, h, evt)
	}
}

// dispatch runs one handler with panic recovery so a misbehaving subscriber
// cannot take down the publishing request.
func (b *memoryBus) dispatch(ctx context.Context, h Handler, evt DebtEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("event", evt.Name).
				Interface("panic", r).
				Msg("event handler panicked")
		}
	}()

	if err := h(ctx, evt); err != nil {
		log.Error().
			Str("event", evt.Name).
			Err(err).
			Msg("event handler failed")
	}
}
