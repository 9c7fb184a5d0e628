package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/oksasatya/go-clinic-api/pkg/response"
)

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request
type KeyFunc func(c *gin.Context) string

// KeyByIPAndPath limits by client IP and route, so login and registration
// have separate budgets.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:" + c.Request.Method + ":" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// Decision is the outcome of one Take.
type Decision struct {
	Allowed   bool
	Remaining int
	Reset     time.Duration
}

// Limiter counts hits per key within a fixed budget.
type Limiter interface {
	Take(ctx context.Context, key string) (Decision, error)
	Max() int
}

// Lua script: atomic INCR + PEXPIRE on first hit
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// RedisLimiter is a fixed window counter shared by every API process.
type RedisLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, max: max, window: window}
}

func (l *RedisLimiter) Max() int { return l.max }

func (l *RedisLimiter) Take(ctx context.Context, key string) (Decision, error) {
	res, err := incrExpireScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Slice()
	if err != nil {
		return Decision{}, err
	}
	count, ttl := 0, int64(0)
	if len(res) == 2 {
		count = toInt(res[0])
		ttl = int64(toInt(res[1]))
	}
	return Decision{
		Allowed:   count <= l.max,
		Remaining: max(l.max-count, 0),
		Reset:     time.Duration(ttl) * time.Millisecond,
	}, nil
}

// MemoryLimiter is the in-process fallback when Redis is not configured.
// Each key gets a token bucket refilled at max per window.
type MemoryLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	buckets map[string]*bucket
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

const sweepAbove = 10000

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{max: max, window: window, buckets: map[string]*bucket{}}
}

func (l *MemoryLimiter) Max() int { return l.max }

func (l *MemoryLimiter) Take(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if len(l.buckets) > sweepAbove {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > l.window {
				delete(l.buckets, k)
			}
		}
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rate.Every(l.window/time.Duration(l.max)), l.max)}
		l.buckets[key] = b
	}
	b.seen = now
	allowed := b.lim.AllowN(now, 1)
	remaining := int(b.lim.TokensAt(now))
	return Decision{
		Allowed:   allowed,
		Remaining: max(remaining, 0),
		Reset:     l.window / time.Duration(l.max),
	}, nil
}

// RateLimit with:
// - standard headers (limit/remaining/reset)
// - optional allowlist bypass, OPTIONS skipped
// - fail-open when the limiter backend errors
func RateLimit(l Limiter, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if l == nil || l.Max() <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if allow != nil && allow(c) {
			c.Next()
			return
		}
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		d, err := l.Take(c.Request.Context(), keyFn(c))
		if err != nil {
			c.Next()
			return
		}
		resetSec := int((d.Reset + time.Second - 1) / time.Second)
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if !d.Allowed {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Abort(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

func toInt(v interface{}) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int:
		return x
	case string:
		i, _ := strconv.Atoi(x)
		return i
	}
	return 0
}
