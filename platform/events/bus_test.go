package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type pingEvent struct {
	BaseEvent
}

func (pingEvent) EventName() string { return "test.ping" }

func TestPublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := NewInMemoryBus(nil)
	var order []int
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error {
		order = append(order, 1)
		return nil
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error {
		order = append(order, 2)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), pingEvent{NewBaseEvent(time.Now())}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)
	boom := errors.New("boom")
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error { return boom }))

	err := bus.PublishSync(context.Background(), pingEvent{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to wrap boom, got %v", err)
	}
}

func TestPublishIsAsyncAndDetached(t *testing.T) {
	bus := NewInMemoryBus(nil)
	var calls atomic.Int32
	var sawCancel atomic.Bool
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error {
		calls.Add(1)
		if ctx.Err() != nil {
			sawCancel.Store(true)
		}
		return nil
	}))
	bus.Subscribe("other", HandlerFunc(func(ctx context.Context, e Event) error {
		t.Error("handler for another event must not run")
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pingEvent{})
	bus.Wait()

	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
	if sawCancel.Load() {
		t.Error("handler context should not inherit publisher cancellation")
	}
}

func TestPublishRecoversFromPanics(t *testing.T) {
	bus := NewInMemoryBus(nil)
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, e Event) error {
		panic("handler bug")
	}))
	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()
}

func TestNewBaseEventStampsIDAndTime(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	e := NewBaseEvent(at)
	if !e.OccurredAt().Equal(at) {
		t.Errorf("OccurredAt = %v, want %v", e.OccurredAt(), at)
	}
	if e.EventID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated event id")
	}
}
