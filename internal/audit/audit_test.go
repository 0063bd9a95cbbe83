package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherStampsAndAppends(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	ctx := context.Background()

	require.NoError(t, pub.Emit(ctx, Event{UserID: 42, Action: ActionDialogStarted}))
	require.NoError(t, pub.Emit(ctx, Event{UserID: 42, Action: ActionCommitted, Detail: "2021-0001"}))
	require.NoError(t, pub.Emit(ctx, Event{UserID: 7, Action: ActionDialogStarted}))

	events, err := pub.List(ctx, 42)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionDialogStarted, events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "2021-0001", events[1].Detail)
}
