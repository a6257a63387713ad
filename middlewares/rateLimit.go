package middlewares

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const defaultIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per caller. Buckets idle for longer than idleTTL are
// dropped, so memory tracks recently active callers only.
type RateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	buckets   map[string]*bucket
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: defaultIdleTTL,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep must be called with mu held.
func (l *RateLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// RateLimit throttles authenticated callers by user id and everyone else by client IP.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := "ip:" + ctx.ClientIP()
		if identity := CurrentIdentity(ctx); identity.UserID != 0 {
			key = "user:" + strconv.FormatUint(uint64(identity.UserID), 10)
		}
		if !l.allow(key) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, try again later"})
			return
		}
		ctx.Next()
	}
}
