package notification

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	channelKeyPrefix = "notify:channel:"
	messageKeyPrefix = "notify:message:"
	scheduledSetKey  = "notify:scheduled"
)

// RedisChannel implements Channel on Redis: channel metadata and the pending
// message live in hashes, and a sorted set scored by fire time drives the
// dispatcher. One message per channel id, matching the one-shot contract.
type RedisChannel struct {
	client *redis.Client
}

func NewRedisChannel(client *redis.Client) *RedisChannel {
	return &RedisChannel{client: client}
}

func (c *RedisChannel) CreateChannel(ctx context.Context, channelID, name, description string, importance Importance, vibrate bool) error {
	return c.client.HSet(ctx, channelKeyPrefix+channelID,
		"name", name,
		"description", description,
		"importance", strconv.Itoa(int(importance)),
		"vibrate", strconv.FormatBool(vibrate),
	).Err()
}

func (c *RedisChannel) ScheduleAt(ctx context.Context, channelID, title, message string, fireAt time.Time) error {
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, messageKeyPrefix+channelID,
		"title", title,
		"message", message,
		"fire_at", fireAt.Format(time.RFC3339),
	)
	pipe.ZAdd(ctx, scheduledSetKey, redis.Z{
		Score:  float64(fireAt.Unix()),
		Member: channelID,
	})
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisChannel) Cancel(ctx context.Context, channelID string) error {
	return c.Remove(ctx, channelID)
}

// DueChannelIDs scans the fire-time sorted set for entries due at or before
// now.
func (c *RedisChannel) DueChannelIDs(ctx context.Context, now time.Time) ([]string, error) {
	return c.client.ZRangeByScore(ctx, scheduledSetKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
}

func (c *RedisChannel) LoadMessage(ctx context.Context, channelID string) (map[string]string, error) {
	return c.client.HGetAll(ctx, messageKeyPrefix+channelID).Result()
}

func (c *RedisChannel) Remove(ctx context.Context, channelID string) error {
	pipe := c.client.TxPipeline()
	pipe.ZRem(ctx, scheduledSetKey, channelID)
	pipe.Del(ctx, messageKeyPrefix+channelID)
	_, err := pipe.Exec(ctx)
	return err
}
