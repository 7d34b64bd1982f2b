package repository

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

const defaultRecoverAfter = time.Minute

// FailoverRateLimitStore uses primary until it fails, then serves from
// fallback and retries primary once recoverAfter has passed.
type FailoverRateLimitStore struct {
	primary      domain.RateLimitStore
	fallback     domain.RateLimitStore
	logger       *zerolog.Logger
	recoverAfter time.Duration
	isDown       atomic.Bool
	lastCheck    atomic.Int64
	now          func() time.Time
}

var _ domain.RateLimitStore = (*FailoverRateLimitStore)(nil)

func NewFailoverRateLimitStore(primary, fallback domain.RateLimitStore, logger *zerolog.Logger) *FailoverRateLimitStore {
	return &FailoverRateLimitStore{
		primary:      primary,
		fallback:     fallback,
		logger:       logger,
		recoverAfter: defaultRecoverAfter,
		now:          time.Now,
	}
}

func (r *FailoverRateLimitStore) markDown() {
	r.isDown.Store(true)
	r.lastCheck.Store(r.now().UnixNano())
}

func (r *FailoverRateLimitStore) shouldProbe() bool {
	last := time.Unix(0, r.lastCheck.Load())
	return r.now().Sub(last) > r.recoverAfter
}

func (r *FailoverRateLimitStore) CheckRateLimit(ctx context.Context, actorID int64, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, actorID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.logger.Error().Err(err).Msg("primary rate limit store failed, falling back to memory")
		r.markDown()
	} else if r.shouldProbe() {
		allowed, err := r.primary.CheckRateLimit(ctx, actorID, limit, window)
		if err == nil {
			r.isDown.Store(false)
			r.logger.Info().Msg("primary rate limit store recovered")
			return allowed, nil
		}
		r.markDown()
	}

	return r.fallback.CheckRateLimit(ctx, actorID, limit, window)
}

// Degraded reports whether requests are currently served by the fallback.
func (r *FailoverRateLimitStore) Degraded() bool {
	return r.isDown.Load()
}
