package holds

import (
	"context"
	"time"

	"tablebook/internal/shared/apperrors"
	"tablebook/internal/shared/config"
	"tablebook/internal/shared/localtime"
	"tablebook/internal/venues"
	"tablebook/pkg/clock"
	"tablebook/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	// CreateHold reserves slot capacity for one party until the TTL runs
	// out or the hold is consumed into a reservation.
	CreateHold(ctx context.Context, req CreateHoldRequest) (*Hold, error)

	// CancelHold releases a hold early. Cancelling an already cancelled or
	// expired hold is a no-op returning the current row.
	CancelHold(ctx context.Context, id uuid.UUID) (*Hold, error)

	// ConsumeHold marks a hold as converted into a reservation.
	ConsumeHold(ctx context.Context, id uuid.UUID) (*Hold, error)

	// SweepExpired flips stale HELD holds to EXPIRED in bounded batches,
	// draining until a pass touches zero rows. Returns total rows flipped.
	SweepExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	venues venues.Repository
	cfg    *config.Config
	clk    clock.Clock
	log    *logger.Logger
}

func NewService(repo Repository, venueRepo venues.Repository, cfg *config.Config, clk clock.Clock) Service {
	return &service{
		repo:   repo,
		venues: venueRepo,
		cfg:    cfg,
		clk:    clk,
		log:    logger.GetDefault(),
	}
}

func (s *service) CreateHold(ctx context.Context, req CreateHoldRequest) (*Hold, error) {
	if req.PartySize < 1 {
		return nil, apperrors.InvalidRequest("party size must be at least 1")
	}
	if req.TTLSeconds != nil && *req.TTLSeconds < 1 {
		return nil, apperrors.InvalidRequest("ttl_seconds must be at least 1")
	}

	venue, err := s.venues.GetVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	if req.TableID != nil {
		table, err := s.venues.GetTable(ctx, *req.TableID)
		if err != nil {
			return nil, err
		}
		if table.VenueID != venue.ID {
			return nil, apperrors.InvalidRequest("table %s does not belong to venue %s", table.ID, venue.ID)
		}
	}

	loc, err := time.LoadLocation(venue.Timezone)
	if err != nil {
		return nil, apperrors.Config("venue %s has unresolvable timezone %q", venue.ID, venue.Timezone)
	}

	hour, minute, err := localtime.ParseClock(req.LocalTime)
	if err != nil {
		return nil, apperrors.InvalidRequest("invalid time %q: expected HH:MM", req.LocalTime)
	}
	instants, err := localtime.Resolve(req.LocalDate, hour, minute, loc)
	if err != nil {
		return nil, apperrors.InvalidRequest("invalid date %q: expected YYYY-MM-DD", req.LocalDate)
	}
	if len(instants) == 0 {
		return nil, apperrors.InvalidRequest("local time %s %s does not exist in %s", req.LocalDate, req.LocalTime, venue.Timezone)
	}
	// On a fold the earlier occurrence wins.
	startAt := instants[0]

	ttl := s.holdTTL(venue, req.TTLSeconds)
	expiresAt := s.clk.Now().Add(ttl)

	hold := &Hold{
		VenueID:   venue.ID,
		TableID:   req.TableID,
		Status:    StatusHeld,
		LocalDate: req.LocalDate,
		LocalTime: req.LocalTime,
		StartAt:   startAt,
		PartySize: req.PartySize,
		ExpiresAt: expiresAt,
		CreatedBy: req.CreatedBy,
	}
	if err := s.repo.Create(ctx, hold); err != nil {
		return nil, err
	}

	s.log.LogHoldCreated(ctx, hold.ID.String(), venue.ID.String(), expiresAt)
	return hold, nil
}

// holdTTL picks the hold lifetime: caller-supplied, then the venue default,
// then the configured fallback.
func (s *service) holdTTL(venue *venues.Venue, ttlSeconds *int) time.Duration {
	if ttlSeconds != nil {
		return time.Duration(*ttlSeconds) * time.Second
	}
	if venue.HoldTTLSeconds > 0 {
		return time.Duration(venue.HoldTTLSeconds) * time.Second
	}
	return s.cfg.Holds.DefaultTTL
}

func (s *service) CancelHold(ctx context.Context, id uuid.UUID) (*Hold, error) {
	hold, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch hold.Status {
	case StatusCancelled, StatusExpired:
		return hold, nil
	case StatusConsumed:
		return nil, apperrors.InvalidRequest("hold %s is already consumed", id)
	}

	changed, err := s.repo.TransitionStatus(ctx, id, StatusHeld, StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Lost a race with the sweep or another cancel; the current row
		// decides.
		return s.CancelHold(ctx, id)
	}

	s.log.LogHoldCancelled(ctx, id.String())
	hold.Status = StatusCancelled
	return hold, nil
}

func (s *service) ConsumeHold(ctx context.Context, id uuid.UUID) (*Hold, error) {
	hold, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := s.repo.TransitionStatus(ctx, id, StatusHeld, StatusConsumed)
	if err != nil {
		return nil, err
	}
	if !changed {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.Conflict("hold %s is %s, not HELD", id, current.Status)
	}

	hold.Status = StatusConsumed
	return hold, nil
}

func (s *service) SweepExpired(ctx context.Context) (int64, error) {
	batchSize := s.cfg.Holds.SweepBatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	var total int64
	for {
		n, err := s.repo.ExpireBatch(ctx, s.clk.Now(), batchSize)
		if err != nil {
			return total, err
		}
		total += n
		if n == 0 {
			return total, nil
		}
	}
}
