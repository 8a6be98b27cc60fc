package results

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Kind names a sink backend.
type Kind string

const (
	KindCSV      Kind = "csv"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindMemory   Kind = "memory"
)

// Options selects and configures a sink backend.
type Options struct {
	Kind          Kind
	CSVPath       string
	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

// Open returns the sink described by opts. An empty Kind means CSV.
func Open(ctx context.Context, opts Options) (Sink, error) {
	switch opts.Kind {
	case KindCSV, "":
		return NewCSVSink(opts.CSVPath), nil
	case KindSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = "results.db"
		}
		return OpenSQLite(path)
	case KindPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres sink requires a database url")
		}
		return OpenPostgres(ctx, opts.DatabaseURL)
	case KindRedis:
		addr := opts.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", addr, err)
		}
		return NewRedisSink(client, opts.RedisKey), nil
	case KindMemory:
		return NewMemorySink(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, opts.Kind)
	}
}
