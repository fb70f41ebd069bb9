package availability

import (
	"context"

	"tablebook/internal/shared/constants"
	"tablebook/pkg/cache"
	"tablebook/pkg/logger"

	"github.com/google/uuid"
)

// Metrics records evaluation observations. Recording must never fail an
// evaluation, so the interface returns nothing.
type Metrics interface {
	IncrementEvaluation(ctx context.Context, venueID uuid.UUID)
}

type redisMetrics struct {
	cache cache.Service
	log   *logger.Logger
}

// NewRedisMetrics counts evaluations per venue in Redis.
func NewRedisMetrics(cacheService cache.Service) Metrics {
	return &redisMetrics{cache: cacheService, log: logger.GetDefault()}
}

func (m *redisMetrics) IncrementEvaluation(ctx context.Context, venueID uuid.UUID) {
	key := constants.BuildEvaluationCounterKey(venueID.String())
	if _, err := m.cache.Increment(ctx, key); err != nil {
		m.log.WarnContext(ctx, "failed to increment evaluation counter",
			"key", key,
			"error", err.Error(),
		)
	}
}

// NopMetrics discards all observations.
type NopMetrics struct{}

func (NopMetrics) IncrementEvaluation(context.Context, uuid.UUID) {}
