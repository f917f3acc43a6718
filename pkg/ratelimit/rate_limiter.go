package ratelimit

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"villa/internal/shared/constants"
)

type RateLimitType string

const (
	RateLimitTypeDefault RateLimitType = "default"
	RateLimitTypePublic  RateLimitType = "public"
	RateLimitTypeAuth    RateLimitType = "auth"
	RateLimitTypeBooking RateLimitType = "booking"
	RateLimitTypeAdmin   RateLimitType = "admin"
	RateLimitTypeHealth  RateLimitType = "health"
)

type Config struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	AuthRequests    int           `json:"auth_requests"`
	BookingRequests int           `json:"booking_requests"`
	AdminRequests   int           `json:"admin_requests"`
	HealthRequests  int           `json:"health_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client *redis.Client
	config *Config
}

func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

// sliding window over a sorted set scored in milliseconds
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local window_start = tonumber(ARGV[1])
	local now = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])
	local member = ARGV[5]

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current_count = redis.call('ZCARD', key)
	if current_count >= limit then
		redis.call('PEXPIRE', key, window_ms)
		return {current_count + 1, 0}
	end

	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, window_ms)

	return {current_count + 1, limit - current_count - 1}
`)

// IsAllowed checks if the request is allowed
func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.getLimit(limitType)
	if !r.config.Enabled || r.isWhitelisted(clientIP) || r.client == nil {
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetTime: time.Now().Add(r.config.WindowDuration).Unix(),
		}, nil
	}

	key := fmt.Sprintf("%s:%s:%s", constants.RATE_LIMIT_PREFIX, clientIP, limitType)
	return r.checkLimit(ctx, key, limit)
}

func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int) (*Result, error) {
	now := time.Now()
	windowStart := now.Add(-r.config.WindowDuration)

	result, err := slidingWindowScript.Run(ctx, r.client, []string{key},
		windowStart.UnixMilli(),
		now.UnixMilli(),
		limit,
		r.config.WindowDuration.Milliseconds(),
		uuid.NewString(),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("redis eval failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return nil, fmt.Errorf("unexpected redis response")
	}

	currentCount, _ := strconv.Atoi(fmt.Sprint(values[0]))
	remaining, _ := strconv.Atoi(fmt.Sprint(values[1]))

	return &Result{
		Allowed:   currentCount <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: now.Add(r.config.WindowDuration).Unix(),
	}, nil
}

func (r *RateLimiter) getLimit(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return r.config.PublicRequests
	case RateLimitTypeAuth:
		return r.config.AuthRequests
	case RateLimitTypeBooking:
		return r.config.BookingRequests
	case RateLimitTypeAdmin:
		return r.config.AdminRequests
	case RateLimitTypeHealth:
		return r.config.HealthRequests
	default:
		return r.config.DefaultRequests
	}
}

func (r *RateLimiter) isWhitelisted(ip string) bool {
	return slices.Contains(r.config.WhitelistedIPs, ip)
}
