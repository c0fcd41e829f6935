package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radyosim/backend/internal/domain/entities"
	"github.com/radyosim/backend/internal/domain/providers"
)

func statusEvent(c *entities.Case) *entities.CaseEvent {
	return entities.NewCaseEvent(c, entities.CaseEventTypeStatusChange)
}

func TestMemoryEventBus_PublishReachesSubscriber(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, providers.EventChannelCaseUpdates)
	require.NoError(t, err)

	c := &entities.Case{ID: "case-1", Name: "Vaka 1", Status: entities.StatusRunning}
	require.NoError(t, bus.Publish(ctx, providers.EventChannelCaseUpdates, statusEvent(c)))

	select {
	case event := <-ch:
		assert.Equal(t, "case-1", event.CaseID)
		assert.Equal(t, entities.StatusRunning, event.Status)
		assert.Equal(t, entities.CaseEventTypeStatusChange, event.EventType)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestMemoryEventBus_PerCaseChannelIsIsolated(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chA, err := bus.Subscribe(ctx, providers.GetCaseChannel("case-a"))
	require.NoError(t, err)
	chB, err := bus.Subscribe(ctx, providers.GetCaseChannel("case-b"))
	require.NoError(t, err)

	c := &entities.Case{ID: "case-a", Status: entities.StatusCompleted}
	require.NoError(t, bus.Publish(ctx, providers.GetCaseChannel("case-a"), statusEvent(c)))

	select {
	case event := <-chA:
		assert.Equal(t, "case-a", event.CaseID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case event := <-chB:
		t.Fatalf("unexpected event on case-b channel: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryEventBus_ContextCancelRemovesSubscriber(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, providers.EventChannelCaseUpdates)
	require.NoError(t, err)

	cancel()

	// Channel is closed once the cancellation is observed
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscriber channel never closed")
		}
	}
}

func TestMemoryEventBus_PublishAfterCloseIsNoop(t *testing.T) {
	bus := NewMemoryEventBus()
	require.NoError(t, bus.Close())

	c := &entities.Case{ID: "case-1"}
	assert.NoError(t, bus.Publish(context.Background(), providers.EventChannelCaseUpdates, statusEvent(c)))
}
