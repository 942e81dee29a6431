package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"

	"github.com/GTDGit/pharmreg_api/internal/metrics"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// pruneEvery is how often full buckets are dropped.
const pruneEvery = time.Minute

// LoginThrottle limits failed logins per client IP. Each IP owns a token
// bucket of perMinute tokens refilled at perMinute per minute; a 401 from the
// login handler takes one token, and an empty bucket answers 429 without
// checking credentials.
type LoginThrottle struct {
	mu        sync.RWMutex
	buckets   map[string]*ratelimit.Bucket
	perMinute int64
	lastPrune time.Time
}

func NewLoginThrottle(perMinute int) *LoginThrottle {
	if perMinute < 1 {
		perMinute = 1
	}
	return &LoginThrottle{
		buckets:   make(map[string]*ratelimit.Bucket),
		perMinute: int64(perMinute),
		lastPrune: time.Now(),
	}
}

func (t *LoginThrottle) bucket(ip string) *ratelimit.Bucket {
	t.mu.RLock()
	b, ok := t.buckets[ip]
	t.mu.RUnlock()

	if !ok {
		t.mu.Lock()
		if b, ok = t.buckets[ip]; !ok {
			b = ratelimit.NewBucketWithRate(float64(t.perMinute)/60, t.perMinute)
			t.buckets[ip] = b
			metrics.LoginThrottleBuckets.Set(float64(len(t.buckets)))
		}
		t.mu.Unlock()
	}
	return b
}

// prune drops buckets that have refilled completely.
func (t *LoginThrottle) prune() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if time.Since(t.lastPrune) < pruneEvery {
		return
	}
	t.lastPrune = time.Now()
	for ip, b := range t.buckets {
		if b.Available() == b.Capacity() {
			delete(t.buckets, ip)
		}
	}
	metrics.LoginThrottleBuckets.Set(float64(len(t.buckets)))
}

// Handle wraps the login route.
func (t *LoginThrottle) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		t.prune()
		b := t.bucket(c.ClientIP())

		if b.Available() <= 0 {
			c.Header("Retry-After", "60")
			utils.Fail(c, utils.ErrTooManyAttempts)
			c.Abort()
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusUnauthorized {
			b.TakeAvailable(1)
		}
	}
}
