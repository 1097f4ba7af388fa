package window

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "event_gate:gate:"

// Redis stores redemptions in one sorted set per gate, scored by unix
// milliseconds, so several instances share the same rate.
type Redis struct {
	client    *redis.Client
	retention time.Duration
}

func NewRedis(client *redis.Client, retention time.Duration) *Redis {
	return &Redis{client: client, retention: retention}
}

func gateKey(gateID string) string {
	return keyPrefix + gateID + ":checkins"
}

func (r *Redis) Add(ctx context.Context, gateID, ticketID string, at time.Time) error {
	const op = "window.Redis.Add"

	key := gateKey(gateID)

	if err := r.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(at.UnixMilli()),
		Member: ticketID,
	}).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cutoff := "(" + strconv.FormatInt(at.Add(-r.retention).UnixMilli(), 10)
	if err := r.client.ZRemRangeByScore(ctx, key, "-inf", cutoff).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.client.Expire(ctx, key, 2*r.retention).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *Redis) Count(ctx context.Context, gateID string, since time.Time) (int64, error) {
	const op = "window.Redis.Count"

	n, err := r.client.ZCount(ctx, gateKey(gateID), strconv.FormatInt(since.UnixMilli(), 10), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}
