package ratelimit

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	httperrors "github.com/ipede/freecourse-services/internal/interfaces/http/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	visitors map[string]*clientLimiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	logger   *zap.Logger
}

func NewRateLimiter(r rate.Limit, b int, ttl time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*clientLimiter),
		rate:     r,
		burst:    b,
		ttl:      ttl,
		logger:   logger,
	}
}

// Run evicts idle visitors every interval until ctx is done
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.evict(now)
		}
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, exists := rl.visitors[ip]; exists {
		v.lastSeen = time.Now()
		return v.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.visitors[ip] = &clientLimiter{limiter, time.Now()}
	return limiter
}

func (rl *RateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r.RemoteAddr)
		if ip == "" {
			httperrors.RespondWithError(w, httperrors.ErrCodeInvalidRequest, "Unable to parse IP", nil, http.StatusBadRequest)
			return
		}
		if !rl.getVisitor(ip).Allow() {
			rl.logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
			httperrors.RespondWithError(w, httperrors.ErrCodeRateLimited, "Rate limit exceeded", nil, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP accepts host:port as well as the bare address left by RealIP
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	if ip := net.ParseIP(remoteAddr); ip != nil {
		return ip.String()
	}
	return ""
}
