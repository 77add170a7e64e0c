package api

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterPool manages per-endpoint rate limiters so that every client
// talking to the same endpoint shares one budget.
type RateLimiterPool struct {
	limiters map[string]*rate.Limiter
	rates    map[string]int
	mu       sync.Mutex
}

// NewRateLimiterPool creates an empty pool.
func NewRateLimiterPool() *RateLimiterPool {
	return &RateLimiterPool{
		limiters: make(map[string]*rate.Limiter),
		rates:    make(map[string]int),
	}
}

// GetOrCreate returns the limiter for an endpoint, creating it on first use.
// A limiter that already exists keeps its original rate; a mismatched
// request logs a warning rather than resizing mid-run.
func (p *RateLimiterPool) GetOrCreate(endpointID string, requestsPerMinute int) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists := p.limiters[endpointID]; exists {
		if existing := p.rates[endpointID]; existing != requestsPerMinute {
			slog.Warn("Rate limiter already exists with different rate, keeping existing",
				"endpoint_id", endpointID,
				"existing_rpm", existing,
				"requested_rpm", requestsPerMinute)
		}
		return limiter
	}

	rps := float64(requestsPerMinute) / 60.0
	burst := requestsPerMinute / 5
	if burst < 5 {
		burst = 5
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	p.limiters[endpointID] = limiter
	p.rates[endpointID] = requestsPerMinute
	return limiter
}

// Wait blocks until the endpoint's limiter admits the next request.
func (p *RateLimiterPool) Wait(ctx context.Context, endpointID string, requestsPerMinute int) error {
	return p.GetOrCreate(endpointID, requestsPerMinute).Wait(ctx)
}
