package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/brokerdesk/brokerdesk/internal/config"
)

// Publisher is the part of a redis client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisNotifier publishes messages as JSON on <prefix>:<tenant>.
type RedisNotifier struct {
	client Publisher
	prefix string
}

// NewRedisNotifier wraps an existing publisher.
func NewRedisNotifier(client Publisher, prefix string) *RedisNotifier {
	return &RedisNotifier{client: client, prefix: prefix}
}

// NewRedisClient connects a go-redis client from config.
func NewRedisClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Channel returns the channel a tenant's messages go to.
func (r *RedisNotifier) Channel(tenantID string) string {
	return r.prefix + ":" + tenantID
}

// Notify implements Notifier.
func (r *RedisNotifier) Notify(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	if err = r.client.Publish(ctx, r.Channel(msg.TenantID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
