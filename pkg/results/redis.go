package results

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list key rows are pushed onto.
const DefaultRedisKey = "sortbench:results"

// RedisSink stores JSON-encoded rows in a Redis list.
type RedisSink struct {
	client *redis.Client
	key    string
}

func NewRedisSink(client *redis.Client, key string) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{client: client, key: key}
}

func (s *RedisSink) Append(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	vals := make([]any, len(rows))
	for i, r := range rows {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
		vals[i] = string(b)
	}
	if err := s.client.RPush(ctx, s.key, vals...).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSink) Reset(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSink) List(ctx context.Context) ([]Row, error) {
	vals, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", s.key, err)
	}
	rows := make([]Row, 0, len(vals))
	for _, v := range vals {
		var r Row
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
