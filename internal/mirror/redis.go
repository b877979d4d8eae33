package mirror

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/kirbo/go-sensorsim/internal/models"
)

// Redis stores the latest envelope per sensor and announces it on the
// channel of the same name.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(cfg models.RedisConfig) *Redis {
	return &Redis{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (r *Redis) Name() string {
	return "redis"
}

func (r *Redis) Publish(ctx context.Context, reading models.SensorReading, ack models.ServerAck) error {
	data, err := encode(reading, ack)
	if err != nil {
		return err
	}

	return r.setAndPublish(ctx, Key(reading.SensorID), string(data))
}

func (r *Redis) setAndPublish(ctx context.Context, channel, data string) error {
	if err := r.rdb.Set(ctx, channel, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", channel, err)
	}

	if err := r.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}

	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
