package middleware

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopwise/backend/internal/metrics"
	"github.com/shopwise/backend/internal/services"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the in-process buckets; the least recently seen
// client is evicted first.
const maxTrackedClients = 10000

// RateLimiter caps requests per client IP over a fixed window. Counters live
// in Redis so every instance shares them; without Redis each process keeps
// its own token buckets.
type RateLimiter struct {
	redis  *redis.Client
	max    int
	window time.Duration

	limiters *lru.Cache[string, *rate.Limiter]
}

// NewRateLimiter allows limit requests per window. Non-positive values are
// raised to one request per minute.
func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		log.Printf("[RATELIMIT] Invalid limit %d, using 1", limit)
		limit = 1
	}
	if window <= 0 {
		log.Printf("[RATELIMIT] Invalid window %s, using 1m", window)
		window = time.Minute
	}

	limiters, err := lru.New[string, *rate.Limiter](maxTrackedClients)
	if err != nil {
		panic(err) // only for a non-positive size
	}

	return &RateLimiter{
		redis:    redisClient,
		max:      limit,
		window:   window,
		limiters: limiters,
	}
}

func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, remaining := l.allow(r.Context(), clientIP(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			metrics.RateLimited.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			services.SendErrorResponse(w, "Too many requests from this IP, please try again later", http.StatusTooManyRequests, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(ctx context.Context, ip string) (bool, int) {
	if l.redis != nil {
		count, err := l.hit(ctx, ip)
		if err == nil {
			remaining := l.max - count
			if remaining < 0 {
				remaining = 0
			}
			return count <= l.max, remaining
		}
		log.Printf("[RATELIMIT] Redis unavailable, using in-process limiter: %v", err)
	}

	lim := l.limiter(ip)
	allowed := lim.Allow()
	remaining := int(lim.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

// hit counts a request in the current window and returns the new total.
// A counter without a TTL (first hit, or an earlier EXPIRE that failed) gets
// one, so a window always ends.
func (l *RateLimiter) hit(ctx context.Context, ip string) (int, error) {
	key := fmt.Sprintf("ratelimit:%s", ip)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if ttl.Val() < 0 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			log.Printf("[RATELIMIT] Failed to set window on %s: %v", key, err)
		}
	}
	return int(incr.Val()), nil
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	if lim, ok := l.limiters.Get(ip); ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Every(l.window/time.Duration(l.max)), l.max)
	if existing, ok, _ := l.limiters.PeekOrAdd(ip, lim); ok {
		return existing
	}
	return lim
}

// clientIP expects chi's RealIP middleware to have rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
