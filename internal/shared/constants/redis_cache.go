package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Centralizes all Redis cache keys and TTL values for the Tablebook engine.
// Pattern: tablebook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	// Availability days are cached keyed by policy hash; occupancy moves
	// fast so the TTL stays short.
	TTL_AVAILABILITY_DAY = 2 * time.Minute

	// Venue policy configuration changes rarely.
	TTL_VENUE_POLICY = 1 * time.Hour
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "tablebook"
)

// ================== AVAILABILITY MODULE ==================

// BuildAvailabilityDayKey builds the cache key for an evaluated day.
// The policy hash already encodes venue id + date + rule set, so the key
// invalidates itself whenever venue configuration changes.
func BuildAvailabilityDayKey(policyHash string) string {
	return fmt.Sprintf("%s:availability:day:%s", CACHE_PREFIX, policyHash)
}

// ================== METRICS ==================

// BuildEvaluationCounterKey builds the per-venue evaluation counter key.
func BuildEvaluationCounterKey(venueID string) string {
	return fmt.Sprintf("%s:metrics:availability_evaluations:%s", CACHE_PREFIX, venueID)
}
