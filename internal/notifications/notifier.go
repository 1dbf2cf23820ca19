// Package notifications provides the portfolio push channel: a websocket hub
// fed by Redis pub/sub so updates reach clients connected to any instance.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Event types emitted on the push channel.
const (
	EventPortfolioUpdate = "portfolioUpdate"
	EventCatalogUpdate   = "catalogUpdate"
)

// Event is the envelope every push message is wrapped in.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishPortfolioUpdate sends a portfolioUpdate event to a user's channel.
func (n *Notifier) PublishPortfolioUpdate(ctx context.Context, userID uint, data any) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(Event{Type: EventPortfolioUpdate, Data: data})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishCatalogUpdate broadcasts a catalogUpdate event to every subscriber.
// Sent whenever any site's price changes so catalog views can refresh
// without polling.
func (n *Notifier) PublishCatalogUpdate(ctx context.Context, data any) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(Event{Type: EventCatalogUpdate, Data: data})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, "portfolio:broadcast", payload).Err()
}

// StartPatternSubscriber subscribes to the portfolio channels and calls
// onMessage for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "portfolio:user:*", "portfolio:broadcast")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user's portfolio stream.
func UserChannel(userID uint) string {
	return "portfolio:user:" + strconv.FormatUint(uint64(userID), 10)
}
