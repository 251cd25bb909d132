package reporting

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

// Stats is the read-only dashboard snapshot
type Stats struct {
	TotalRequesters   int `json:"total_users"`
	TotalHelpers      int `json:"total_helpers"`
	VerifiedHelpers   int `json:"verified_helpers"`
	PendingHelpers    int `json:"pending_helpers"`
	TotalRequests     int `json:"total_requests"`
	CompletedRequests int `json:"completed_requests"`
	ActiveRequests    int `json:"active_requests"`
}

// Store is the counting projection over accounts and requests
type Store interface {
	Stats(ctx context.Context) (*Stats, error)
}

// Service serves dashboard counts, with a short-lived redis cache in front.
// The snapshot has no freshness requirement, so stale reads are fine.
type Service struct {
	store  Store
	redis  *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

const statsCacheKey = "admin:stats"

// NewService creates a new reporting service. The redis client is optional.
func NewService(store Store, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{store: store, redis: rdb, ttl: ttl, logger: log}
}

// Stats returns the platform counters, preferring the cached snapshot
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to compute stats", err)
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *Service) fromCache(ctx context.Context) *Stats {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, statsCacheKey).Result()
	if err != nil {
		return nil
	}
	var stats Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *Service) toCache(ctx context.Context, stats *Stats) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, statsCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("Failed to cache stats snapshot", logger.Err(err))
	}
}
