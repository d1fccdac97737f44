package ratelimit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
)

// Limiter bounds the request rate against a ledger RPC provider
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Wait blocks until a request may be sent or ctx is done
	Wait(ctx context.Context) error

	// Close releases the limiter's resources
	Close() error
}

// Config holds the configuration for a provider limiter
type Config struct {
	// Name identifies the provider; replicas sharing a name share the budget
	Name              string
	RequestsPerSecond int
	Burst             int

	// RedisKeyPrefix namespaces the distributed limiter keys
	RedisKeyPrefix string
	// LocalFallbackMultiplier scales the local rate while Redis is unreachable
	LocalFallbackMultiplier float64
	// HealthCheckInterval is how often an unreachable Redis is probed again
	HealthCheckInterval time.Duration
}

type localLimiter struct {
	limiter *rate.Limiter
}

// NewLocalLimiter creates an in-process token bucket. A non-positive rate disables limiting.
func NewLocalLimiter(requestsPerSecond, burst int) Limiter {
	if requestsPerSecond <= 0 {
		return &localLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst <= 0 {
		burst = requestsPerSecond
	}
	return &localLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

func (l *localLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

func (l *localLimiter) Close() error {
	return nil
}

// distributedLimiter shares one budget across every process using the same Redis,
// falling back to a local bucket while Redis is unreachable
type distributedLimiter struct {
	config             Config
	redis              adapter.RedisClient
	distributedLimiter adapter.RedisRateLimiter
	localLimiter       *rate.Limiter
	preFilterLimiter   *rate.Limiter
	clock              adapter.Clock
	redisAvailable     atomic.Bool
	closed             chan struct{}
	closeOnce          sync.Once
}

// NewDistributedLimiter creates a Redis-backed limiter
func NewDistributedLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx); err != nil {
		redisAvailable = false
		logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
	}

	localRate := max(float64(cfg.RequestsPerSecond)*cfg.LocalFallbackMultiplier, 1.0)

	l := &distributedLimiter{
		config:             cfg,
		redis:              rc,
		distributedLimiter: rc.NewRateLimiter(),
		localLimiter:       rate.NewLimiter(rate.Limit(localRate), cfg.Burst),
		// reduces Redis round trips without lowering throughput
		preFilterLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		clock:            clock,
		closed:           make(chan struct{}),
	}
	l.redisAvailable.Store(redisAvailable)

	go l.monitorRedisHealth(clock.NewTicker(cfg.HealthCheckInterval))

	logger.Info("RPC rate limiter initialized",
		zap.String("name", cfg.Name),
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Bool("redis_available", redisAvailable),
	)

	return l, nil
}

// Wait acquires a token, blocking until one is available
func (l *distributedLimiter) Wait(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !l.redisAvailable.Load() {
			return l.localLimiter.Wait(ctx)
		}

		allowed, retryAfter, err := l.tryDistributedLimit(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			l.redisAvailable.Store(false)
			logger.Warn("Redis rate limiter error, falling back to local",
				zap.String("name", l.config.Name),
				zap.Error(err),
			)
			continue
		}
		if allowed {
			return nil
		}

		// 50-150% of retryAfter so replicas do not retry in lockstep
		jitter := time.Duration(float64(retryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(jitter):
		}
	}
}

// tryDistributedLimit returns (allowed, retryAfter, error)
func (l *distributedLimiter) tryDistributedLimit(ctx context.Context) (bool, time.Duration, error) {
	if err := l.preFilterLimiter.Wait(ctx); err != nil {
		return false, 0, err
	}

	key := l.config.RedisKeyPrefix + l.config.Name
	res, err := l.distributedLimiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   l.config.RequestsPerSecond,
		Burst:  l.config.Burst,
		Period: time.Second,
	})
	if err != nil {
		return false, 0, err
	}

	if res.Allowed == 0 {
		logger.Debug("Rate limit token unavailable, waiting",
			zap.String("name", l.config.Name),
			zap.Duration("retry_after", res.RetryAfter),
		)
		retryAfter := res.RetryAfter
		if retryAfter <= 0 {
			retryAfter = 10 * time.Millisecond
		}
		return false, retryAfter, nil
	}

	return true, 0, nil
}

// monitorRedisHealth periodically checks Redis and switches back from the local fallback
func (l *distributedLimiter) monitorRedisHealth(ticker *time.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-l.closed:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx)
		cancel()

		wasAvailable := l.redisAvailable.Load()
		l.redisAvailable.Store(err == nil)

		if !wasAvailable && err == nil {
			logger.Info("Redis connection restored", zap.String("name", l.config.Name))
		}
	}
}

// Close stops the health monitor and closes the Redis connection
func (l *distributedLimiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.closed)
		err = l.redis.Close()
	})
	return err
}

func validateConfig(cfg *Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("name is required")
	}
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = "ff:rental:rpc:"
	}
	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = 0.5
	}
	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = 10 * time.Second
	}
	return nil
}
