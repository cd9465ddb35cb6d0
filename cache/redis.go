package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client stays nil when redis is not configured; every helper then degrades
// to a miss or a no-op.
var Client *redis.Client

var (
	ErrMiss     = errors.New("cache miss")
	ErrDisabled = errors.New("cache disabled")
)

func InitRedis(cfg config.RedisConfig, logger *zap.Logger) error {
	if !cfg.Enabled() {
		logger.Info("redis_disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("redis_connection_failed",
			zap.Error(err),
			zap.String("addr", cfg.Addr()),
		)
		_ = client.Close()
		return err
	}

	Client = client
	logger.Info("redis_connected", zap.String("addr", cfg.Addr()))
	return nil
}

func Enabled() bool {
	return Client != nil
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return Client.Set(ctx, key, data, expiration).Err()
}

// Get reads key into dest. A missing key returns ErrMiss.
func Get(ctx context.Context, key string, dest interface{}) error {
	if Client == nil {
		return ErrDisabled
	}
	val, err := Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	} else if err != nil {
		return fmt.Errorf("cache get failed: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache unmarshal failed: %w", err)
	}
	return nil
}

func Delete(ctx context.Context, keys ...string) error {
	if Client == nil || len(keys) == 0 {
		return nil
	}
	return Client.Del(ctx, keys...).Err()
}

// DeletePattern removes every key matching pattern (e.g. cache:1:*).
func DeletePattern(ctx context.Context, pattern string) error {
	if Client == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := Client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := Client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete keys failed: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

// IncrementCounter increments key and sets its TTL on the first increment.
func IncrementCounter(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	if Client == nil {
		return 0, ErrDisabled
	}
	val, err := Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	if val == 1 {
		if err := Client.Expire(ctx, key, expiration).Err(); err != nil {
			return val, err
		}
	}

	return val, nil
}

func Close() error {
	if Client != nil {
		return Client.Close()
	}
	return nil
}

func UserKeyPrefix(userID uint) string {
	return fmt.Sprintf("cache:%d:", userID)
}

// InvalidateUser drops every cached response for a user.
func InvalidateUser(ctx context.Context, userID uint) error {
	return DeletePattern(ctx, UserKeyPrefix(userID)+"*")
}
