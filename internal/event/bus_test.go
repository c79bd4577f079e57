package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffersontgc/credistore-be/internal/model"
)

func testDebt() *model.Debt {
	return &model.Debt{ID: 1, UUID: uuid.New(), Status: model.DebtStatusActive}
}

func TestPublish_SynchronousInOrder(t *testing.T) {
	bus := NewBus()
	var order []int

	bus.Subscribe(DebtCreated, func(context.Context, DebtEvent) error {
		order = append(order, 1)
		return nil
	})
	bus.Subscribe(DebtCreated, func(context.Context, DebtEvent) error {
		order = append(order, 2)
		return nil
	})

	bus.Publish(context.Background(), DebtEvent{Name: DebtCreated, Debt: testDebt()})

	// dispatch is synchronous, so both handlers ran before Publish returned
	assert.Equal(t, []int{1, 2}, order)
}

func TestPublish_RoutesByName(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(DebtCreated, func(_ context.Context, evt DebtEvent) error {
		got = append(got, evt.Name)
		return nil
	})

	bus.Publish(context.Background(), DebtEvent{Name: DebtCancelled, Debt: testDebt()})
	assert.Empty(t, got)

	bus.Publish(context.Background(), DebtEvent{Name: DebtCreated, Debt: testDebt()})
	assert.Equal(t, []string{DebtCreated}, got)
}

func TestPublish_HandlerErrorIsIsolated(t *testing.T) {
	bus := NewBus()
	ran := false

	bus.Subscribe(DebtCreated, func(context.Context, DebtEvent) error {
		return errors.New("recompute failed")
	})
	bus.Subscribe(DebtCreated, func(context.Context, DebtEvent) error {
		ran = true
		return nil
	})

	// must not panic or abort the remaining handlers
	bus.Publish(context.Background(), DebtEvent{Name: DebtCreated, Debt: testDebt()})
	assert.True(t, ran)
}

func TestPublish_HandlerPanicIsRecovered(t *testing.T) {
	bus := NewBus()
	ran := false

	bus.Subscribe(DebtCreated, func(context.Context, DebtEvent) error {
		panic("boom")
	})
	bus.Subscribe(DebtCreated, func(context.Context, DebtEvent) error {
		ran = true
		return nil
	})

	require.NotPanics(t, func() {
		bus.Publish(context.Background(), DebtEvent{Name: DebtCreated, Debt: testDebt()})
	})
	assert.True(t, ran)
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := NewBus()
	require.NotPanics(t, func() {
		bus.Publish(context.Background(), DebtEvent{Name: DebtStatusUpdated, Debt: testDebt()})
	})
}
