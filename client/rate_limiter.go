package client

import (
	"io"
	"sync"
	"time"
)

// RateLimiter bounds download throughput with a simple token bucket holding
// up to one second of budget.
type RateLimiter struct {
	mu     sync.Mutex
	rate   int64   // bytes per second
	tokens float64 // current available tokens
	last   time.Time
}

func newRateLimiter(bytesPerSecond int64) *RateLimiter {
	return &RateLimiter{
		rate:   bytesPerSecond,
		tokens: float64(bytesPerSecond),
		last:   time.Now(),
	}
}

// limitedReader throttles reads through the limiter. A nil limiter passes
// reads through untouched.
type limitedReader struct {
	under io.Reader
	lim   *RateLimiter
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.lim == nil || lr.lim.rate <= 0 {
		return lr.under.Read(p)
	}
	lr.lim.mu.Lock()
	now := time.Now()
	if elapsed := now.Sub(lr.lim.last).Seconds(); elapsed > 0 {
		lr.lim.tokens += elapsed * float64(lr.lim.rate)
		if max := float64(lr.lim.rate); lr.lim.tokens > max {
			lr.lim.tokens = max
		}
		lr.lim.last = now
	}
	allowed := int(lr.lim.tokens)
	if allowed <= 0 {
		lr.lim.mu.Unlock()
		time.Sleep(time.Duration(float64(time.Second) / float64(lr.lim.rate)))
		return lr.Read(p)
	}
	if len(p) > allowed {
		p = p[:allowed]
	}
	lr.lim.mu.Unlock()

	n, err := lr.under.Read(p)
	if n > 0 {
		lr.lim.mu.Lock()
		lr.lim.tokens -= float64(n)
		lr.lim.mu.Unlock()
	}
	return n, err
}

// throttled wraps r with the client's download rate limit, if any.
func (c *Client) throttled(r io.Reader) io.Reader {
	if c.limiter == nil {
		return r
	}
	return &limitedReader{under: r, lim: c.limiter}
}
