package exchange

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const rateKey = "exchange_rate:usd"

// RedisRateStore keeps the cached rate in redis so every instance shares
// it. Last write wins, which is fine for an advisory value.
type RedisRateStore struct {
	client *redis.Client
}

func NewRedisRateStore(client *redis.Client) *RedisRateStore {
	return &RedisRateStore{client: client}
}

func (s *RedisRateStore) Load(ctx context.Context) (Rate, bool, error) {
	raw, err := s.client.Get(ctx, rateKey).Result()
	if err == redis.Nil {
		return Rate{}, false, nil
	}
	if err != nil {
		return Rate{}, false, fmt.Errorf("redis get: %v", err)
	}

	var rate Rate
	if err := json.Unmarshal([]byte(raw), &rate); err != nil {
		return Rate{}, false, fmt.Errorf("failed to parse stored rate: %v", err)
	}
	return rate, true, nil
}

func (s *RedisRateStore) Save(ctx context.Context, rate Rate) error {
	raw, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("failed to marshal rate: %v", err)
	}
	if err := s.client.Set(ctx, rateKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %v", err)
	}
	return nil
}
