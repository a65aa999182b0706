package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
)

// EventCache holds the most recent event snapshot so the watcher does not
// hit Postgres on every tick. A cache miss is returned as (nil, false, nil).
type EventCache struct {
	client *goredis.Client
	key    string
}

func NewEventCache(r *Redis) *EventCache {
	return &EventCache{
		client: r.Client,
		key:    "events:recent",
	}
}

func (c *EventCache) GetRecent(ctx context.Context) ([]domain.Event, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false, err
	}

	return events, true, nil
}

func (c *EventCache) SetRecent(ctx context.Context, events []domain.Event, ttl time.Duration) error {
	b, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}

func (c *EventCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
