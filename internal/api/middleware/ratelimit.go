package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	appErrors "github.com/mhartig/microshop/internal/errors"
	"github.com/mhartig/microshop/internal/utils/response"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a sliding-window request limit per client address,
// backed by a redis sorted set per client.
type RateLimiter struct {
	client      *redis.Client
	maxRequests int64
	windowSize  time.Duration
	now         func() time.Time
}

func NewRateLimiter(client *redis.Client, maxRequests int64, windowSize time.Duration) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxRequests: maxRequests,
		windowSize:  windowSize,
		now:         time.Now,
	}
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		allowed, retryAfter, err := rl.check(r)
		if err != nil {
			// Redis being down must not take the API down with it.
			slog.Warn("Rate limit check failed, allowing request", slog.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.Error(w, appErrors.TooManyRequestsError("Request rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)

	})
}

func (rl *RateLimiter) check(r *http.Request) (bool, int, error) {

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	key := fmt.Sprintf("rate_limit:%s", host)

	now := rl.now().Unix()
	windowStart := now - int64(rl.windowSize.Seconds())

	ctx := r.Context()

	// redis pipeline for executing multiple commands
	pipe := rl.client.Pipeline()

	// drop entries that fell out of the window
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))

	// record the current request
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})

	// count requests inside the window
	count := pipe.ZCard(ctx, key)

	// let the key expire with the window
	pipe.Expire(ctx, key, rl.windowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	requests := count.Val()

	if requests > rl.maxRequests {
		oldest, err := rl.client.ZRange(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, int(rl.windowSize.Seconds()), nil
		}

		oldestTime, err := strconv.ParseInt(oldest[0], 10, 64)
		if err != nil {
			return false, int(rl.windowSize.Seconds()), nil
		}

		retryAfter := int64(rl.windowSize.Seconds()) - (now - oldestTime)

		return false, int(retryAfter), nil
	}

	return true, 0, nil
}
