package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var RedisClient *redis.Client

// ErrLockNotAcquired is returned when a lock is still held after all retries.
var ErrLockNotAcquired = errors.New("failed to acquire lock")

const (
	lockRetries    = 3
	lockRetryDelay = 200 * time.Millisecond
)

type RedisConfig struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	MinIdleConns int
	ReadTimeout  time.Duration
	MaxRetries   int
}

// InitializeRedis connects the global Redis client
func InitializeRedis(redisURL string) error {
	config, err := LoadRedisConfig(redisURL)
	if err != nil {
		return fmt.Errorf("failed to load Redis configuration: %w", err)
	}

	RedisClient, err = NewRedisClient(config)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis client: %w", err)
	}

	log.Info().Msg("Redis connection initialized successfully.")
	return nil
}

// LoadRedisConfig reads pool tuning from environment variables with default fallbacks
func LoadRedisConfig(redisURL string) (RedisConfig, error) {
	if redisURL == "" {
		return RedisConfig{}, errors.New("REDIS_URL is not set")
	}

	return RedisConfig{
		URL:          redisURL,
		PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
		DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 30*time.Second),
		MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 10*time.Second),
		MaxRetries:   getEnvAsInt("REDIS_MAX_RETRIES", 3),
	}, nil
}

func getEnvAsInt(name string, defaultValue int) int {
	if value, exists := os.LookupEnv(name); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("name", name).Int("default", defaultValue).Msg("Invalid integer value, using default")
	}
	return defaultValue
}

func getEnvAsDuration(name string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(name); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
		log.Warn().Str("name", name).Dur("default", defaultValue).Msg("Invalid duration value, using default")
	}
	return defaultValue
}

// NewRedisClient creates a Redis client with the provided configuration
func NewRedisClient(config RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = config.PoolSize
	opt.MinIdleConns = config.MinIdleConns
	opt.DialTimeout = config.DialTimeout
	opt.ReadTimeout = config.ReadTimeout
	opt.MaxRetries = config.MaxRetries

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis server: %w", err)
	}

	log.Info().
		Int("pool_size", config.PoolSize).
		Int("min_idle_conns", config.MinIdleConns).
		Dur("dial_timeout", config.DialTimeout).
		Dur("read_timeout", config.ReadTimeout).
		Int("max_retries", config.MaxRetries).
		Msg("Redis client configured")
	return client, nil
}

// NewLock acquires a distributed lock using Redis
func NewLock(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if RedisClient == nil {
		return false, errors.New("Redis client is not initialized")
	}

	return RedisClient.SetNX(ctx, key, value, ttl).Result()
}

const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// ReleaseLock releases a distributed lock using Redis with Lua scripting
func ReleaseLock(ctx context.Context, key string, value string) error {
	if RedisClient == nil {
		return errors.New("Redis client is not initialized")
	}

	script := redis.NewScript(releaseLockScript)
	result, err := script.Run(ctx, RedisClient, []string{key}, value).Result()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if n, ok := result.(int64); !ok || n == 0 {
		return errors.New("lock release failed: not the lock owner")
	}
	return nil
}

// WithLock runs fn while holding the lock named key, retrying acquisition a few times.
func WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	lockValue := uuid.New().String()

	var locked bool
	var err error
	for i := 0; i < lockRetries; i++ {
		locked, err = NewLock(ctx, key, lockValue, ttl)
		if err == nil && locked {
			break
		}
		if i < lockRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(lockRetryDelay):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockNotAcquired, err)
	}
	if !locked {
		return ErrLockNotAcquired
	}
	defer func() {
		if err := ReleaseLock(ctx, key, lockValue); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to release lock")
		}
	}()

	return fn()
}

// MonitorRedisPool logs the connection pool statistics
func MonitorRedisPool() {
	if RedisClient == nil {
		return
	}
	stats := RedisClient.PoolStats()
	log.Info().
		Uint32("total", stats.TotalConns).
		Uint32("idle", stats.IdleConns).
		Uint32("stale", stats.StaleConns).
		Msg("Redis pool stats")
}
