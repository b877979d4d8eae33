package relay

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/kirbo/go-sensorsim/internal/channels"
)

// Subscribe handles every envelope published under the reading prefix until
// ctx is done or the subscription closes.
func (r *Relay) Subscribe(ctx context.Context, rdb *redis.Client) error {
	pubsub := rdb.PSubscribe(ctx, channels.Reading+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("psubscribe: %w", err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := r.Handle(ctx, msg.Payload); err != nil {
				r.logger.Printf("handle %s: %v", msg.Channel, err)
			}
		}
	}
}

// WarmFromRedis seeds the cache with the envelopes currently stored in redis.
func (r *Relay) WarmFromRedis(ctx context.Context, rdb *redis.Client) error {
	iter := rdb.Scan(ctx, 0, channels.Reading+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		payload, err := rdb.Get(ctx, key).Result()
		if err != nil {
			r.logger.Printf("No data found for: %s", key)
			continue
		}
		r.Warm(payload)
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}
