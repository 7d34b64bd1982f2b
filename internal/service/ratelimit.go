package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/metrics"

	"github.com/rs/zerolog"
)

// RateLimitService caps requests per caller id in fixed windows.
type RateLimitService struct {
	store  domain.RateLimitStore
	limit  int
	window time.Duration
	logger *zerolog.Logger
}

func NewRateLimitService(store domain.RateLimitStore, limit int, window time.Duration, logger *zerolog.Logger) *RateLimitService {
	return &RateLimitService{store: store, limit: limit, window: window, logger: logger}
}

// Allow reports whether actorID may make another request. Store failures
// let the request through.
func (s *RateLimitService) Allow(ctx context.Context, actorID int64) bool {
	if s == nil || s.store == nil || s.limit <= 0 {
		return true
	}

	ok, err := s.store.CheckRateLimit(ctx, actorID, s.limit, s.window)
	if err != nil {
		s.logger.Error().Err(err).Int64("actor_id", actorID).Msg("rate limit check failed")
		return true
	}
	if !ok {
		metrics.IncRateLimited("actor")
		s.logger.Debug().Int64("actor_id", actorID).Msg("actor rate limited")
	}
	return ok
}
