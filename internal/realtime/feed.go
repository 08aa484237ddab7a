package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// EventType identifies the kind of change an event describes
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is a change notification scoped to a table and record
type Event struct {
	Type    EventType       `json:"type"`
	Table   string          `json:"table"`
	Scope   string          `json:"scope"` // filter key, e.g. the article id for comment events
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Disposer tears down a subscription. Safe to call more than once.
type Disposer func()

// Feed notifies subscribers of insert/update/delete events scoped to a
// table and filter key
type Feed interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context, table, scope string) (<-chan Event, Disposer, error)
}

// redisFeed implements Feed over Redis pub/sub, one channel per
// (table, scope) pair
type redisFeed struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedisFeed creates a Feed backed by Redis pub/sub
func NewRedisFeed(client *redis.Client, log zerolog.Logger) Feed {
	return &redisFeed{
		client: client,
		log:    log.With().Str("component", "realtime").Logger(),
	}
}

func channelName(table, scope string) string {
	return "feed:" + table + ":" + scope
}

// Publish broadcasts the event to current subscribers. Delivery is
// fire-and-forget: a publish with no subscribers is not an error.
func (f *redisFeed) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, channelName(event.Table, event.Scope), data).Err()
}

// Subscribe starts listening for events on the (table, scope) channel.
// The returned disposer closes the subscription and the event channel.
func (f *redisFeed) Subscribe(ctx context.Context, table, scope string) (<-chan Event, Disposer, error) {
	sub := f.client.Subscribe(ctx, channelName(table, scope))

	// Force the subscription to be established before returning so a
	// publish immediately after Subscribe is not lost.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, err
	}

	events := make(chan Event, 16)
	done := make(chan struct{})

	go func() {
		defer close(events)
		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					f.log.Warn().Err(err).Str("channel", msg.Channel).Msg("Dropping malformed feed event")
					continue
				}
				select {
				case events <- event:
				default:
					// Slow subscriber; drop rather than block the feed.
					f.log.Warn().Str("channel", msg.Channel).Msg("Subscriber buffer full, event dropped")
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	dispose := func() {
		once.Do(func() {
			close(done)
			sub.Close()
		})
	}

	return events, dispose, nil
}
