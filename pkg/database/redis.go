package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection settings. The env tags are relative so
// the struct can be embedded with a REDIS_ prefix.
type RedisConfig struct {
	Enabled     bool          `env:"ENABLED" envDefault:"false"`
	Host        string        `env:"HOST" envDefault:"localhost"`
	Port        int           `env:"PORT" envDefault:"6379"`
	Password    string        `env:"PASSWORD"`
	DB          int           `env:"DB" envDefault:"0"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"2s"`

	// SlowThreshold logs commands slower than this; zero disables it.
	SlowThreshold time.Duration `env:"SLOW_THRESHOLD" envDefault:"50ms"`
}

// DefaultRedisConfig returns a local, disabled configuration.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:          "localhost",
		Port:          6379,
		DialTimeout:   2 * time.Second,
		SlowThreshold: 50 * time.Millisecond,
	}
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr(), err)
	}

	return client, nil
}

// RedisChecker adapts a client to a readiness probe.
func RedisChecker(client *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
