package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luisalfonso634/forecast-weather/collector"
)

// Publisher mirrors each completed cycle into Redis so dashboards on
// other hosts can read the latest records without hitting the API.
type Publisher struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPublisher connects to Redis via a REDIS_URL-style address and
// verifies the connection with a ping.
func NewPublisher(ctx context.Context, redisURL string, ttl time.Duration) (*Publisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Publisher{client: client, ttl: ttl}, nil
}

// Publish stores a cycle's result under forecast-weather:latest:<country>.
func (p *Publisher) Publish(ctx context.Context, result *collector.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal cycle result: %w", err)
	}

	key := fmt.Sprintf("forecast-weather:latest:%s", result.Country)
	if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
