package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register(1, nil)
	require.NoError(t, err)
	c2, err := hub.Register(1, nil)
	require.NoError(t, err)
	other, err := hub.Register(2, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, hub.ConnectionCount(1))
	assert.Equal(t, 1, hub.ConnectionCount(2))

	hub.Broadcast(1, `{"type":"portfolioUpdate"}`)

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"type":"portfolioUpdate"}`, string(msg))
		default:
			t.Fatal("expected a buffered message for user 1")
		}
	}

	select {
	case <-other.Send:
		t.Fatal("user 2 must not receive user 1's update")
	default:
	}
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register(1, nil)
	require.NoError(t, err)
	c2, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.BroadcastAll(`{"type":"catalogUpdate"}`)

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"type":"catalogUpdate"}`, string(msg))
		default:
			t.Fatal("expected a broadcast for every connection")
		}
	}
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(1, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(1, nil)
	assert.Error(t, err)

	// Other users are unaffected.
	_, err = hub.Register(2, nil)
	assert.NoError(t, err)
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(1, nil)
	require.NoError(t, err)
	require.Equal(t, 1, hub.ConnectionCount(1))

	hub.UnregisterClient(client)
	assert.Equal(t, 0, hub.ConnectionCount(1))

	// Double unregister is a no-op.
	hub.UnregisterClient(client)
	assert.Equal(t, 0, hub.ConnectionCount(1))
}

func TestHub_WiringDeliversPublishedEvents(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	notifier := NewNotifier(rdb)
	hub := NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	client, err := hub.Register(7, nil)
	require.NoError(t, err)
	stranger, err := hub.Register(8, nil)
	require.NoError(t, err)

	// The subscriber goroutine needs a moment to attach.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, notifier.PublishPortfolioUpdate(ctx, 7, map[string]string{"hello": "world"}))

	select {
	case msg := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(msg, &event))
		assert.Equal(t, EventPortfolioUpdate, event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a portfolioUpdate within 2s")
	}

	select {
	case <-stranger.Send:
		t.Fatal("user 8 must not receive user 7's update")
	case <-time.After(100 * time.Millisecond):
	}

	// Catalog updates fan out to everyone.
	require.NoError(t, notifier.PublishCatalogUpdate(ctx, map[string]string{"id": "1"}))

	for _, c := range []*Client{client, stranger} {
		select {
		case msg := <-c.Send:
			var event Event
			require.NoError(t, json.Unmarshal(msg, &event))
			assert.Equal(t, EventCatalogUpdate, event.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("expected a catalogUpdate within 2s")
		}
	}
}

func TestUserChannel(t *testing.T) {
	assert.Equal(t, "portfolio:user:42", UserChannel(42))
}

func TestNotifier_NilClientIsSafe(t *testing.T) {
	n := NewNotifier(nil)
	ctx := context.Background()
	assert.NoError(t, n.PublishPortfolioUpdate(ctx, 1, nil))
	assert.NoError(t, n.PublishCatalogUpdate(ctx, nil))
	assert.NoError(t, n.StartPatternSubscriber(ctx, func(string, string) {}))
}
