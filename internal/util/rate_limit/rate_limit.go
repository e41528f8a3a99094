package rate_limit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per project. Buckets live in Valkey so
// every instance shares them. Without a client, or while Valkey is failing,
// buckets local to the process are used instead.
type RateLimiter struct {
	client    valkey.Client
	keyPrefix string
	limit     rate.Limit
	burst     int
	logger    *slog.Logger

	mu          sync.Mutex
	localBucket map[uuid.UUID]*rate.Limiter
}

type RateLimitResult struct {
	Allowed       bool      `json:"allowed"`
	Remaining     int       `json:"remaining"`
	ResetTime     time.Time `json:"resetTime"`
	RetryAfterSec int       `json:"retryAfterSec,omitempty"`
}

const (
	defaultTimeout = 5 * time.Second
	bucketTTLSec   = 300
)

// Atomically refills the bucket for the elapsed time, takes one token if
// available and stores the new state.
const tokenBucketLuaScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local rps_limit = tonumber(ARGV[2])
local burst_limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local current = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(current[1]) or burst_limit
local last_refill = tonumber(current[2]) or now

local elapsed = math.max(0, now - last_refill)
local tokens_to_add = math.floor(elapsed * rps_limit / 1000)
tokens = math.min(burst_limit, tokens + tokens_to_add)
if tokens_to_add > 0 then
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill', last_refill)
redis.call('EXPIRE', key, ttl)

local time_to_full = 0
if tokens < burst_limit and rps_limit > 0 then
    time_to_full = math.ceil((burst_limit - tokens) * 1000 / rps_limit)
end

return {allowed, tokens, time_to_full}
`

func NewRateLimiter(
	client valkey.Client,
	keyPrefix string,
	rps float64,
	burst int,
	logger *slog.Logger,
) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		client:      client,
		keyPrefix:   keyPrefix,
		limit:       rate.Limit(rps),
		burst:       burst,
		logger:      logger,
		localBucket: make(map[uuid.UUID]*rate.Limiter),
	}
}

// NewLocalRateLimiter never talks to Valkey.
func NewLocalRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		limit:       limit,
		burst:       burst,
		localBucket: make(map[uuid.UUID]*rate.Limiter),
	}
}

// Allow takes one token from the project's bucket.
func (r *RateLimiter) Allow(projectID uuid.UUID) bool {
	if r.client == nil {
		return r.allowLocally(projectID)
	}

	result, err := r.CheckRateLimit(projectID)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("shared rate limit unavailable, using local bucket", "projectId", projectID, "error", err)
		}

		return r.allowLocally(projectID)
	}

	return result.Allowed
}

func (r *RateLimiter) CheckRateLimit(projectID uuid.UUID) (*RateLimitResult, error) {
	if r.client == nil {
		return nil, errors.New("rate limit check failed: no valkey client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	rps := float64(r.limit)
	if r.limit == rate.Inf {
		rps = math.MaxInt32
	}

	result := r.client.Do(ctx, r.client.B().Eval().
		Script(tokenBucketLuaScript).
		Numkeys(1).
		Key(r.keyPrefix+projectID.String()).
		Arg(strconv.FormatInt(time.Now().UnixMilli(), 10)).
		Arg(strconv.FormatFloat(rps, 'f', -1, 64)).
		Arg(strconv.Itoa(r.burst)).
		Arg(strconv.Itoa(bucketTTLSec)).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit result: %w", err)
	}

	if len(values) < 3 {
		return nil, fmt.Errorf("invalid rate limit result: expected 3 values, got %d", len(values))
	}

	allowed := values[0] == 1

	var retryAfterSec int
	if !allowed {
		retryAfterSec = 1
		if rps > 0 {
			retryAfterSec = max(1, int(math.Ceil(1/rps)))
		}
	}

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     int(values[1]),
		ResetTime:     time.Now().Add(time.Duration(values[2]) * time.Millisecond),
		RetryAfterSec: retryAfterSec,
	}, nil
}

func (r *RateLimiter) ResetRateLimit(projectID uuid.UUID) error {
	r.mu.Lock()
	delete(r.localBucket, projectID)
	r.mu.Unlock()

	if r.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return r.client.Do(ctx, r.client.B().Del().Key(r.keyPrefix+projectID.String()).Build()).Error()
}

func (r *RateLimiter) allowLocally(projectID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.localBucket[projectID]
	if !ok {
		bucket = rate.NewLimiter(r.limit, r.burst)
		r.localBucket[projectID] = bucket
	}

	return bucket.Allow()
}
