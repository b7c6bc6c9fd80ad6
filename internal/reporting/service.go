package reporting

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository stores delivery counters.
//
// IMPORTANT:
// - Reads must be scoped to one guild.
// - Add is called on the event path; implementations must not block on I/O for long.
type Repository interface {
	Add(ctx context.Context, o Outcome) error
	Get(ctx context.Context, guildID int64) (DeliveryStats, error)
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service { return &Service{repo: repo, clock: time.Now} }

// Record counts one routed event.
func (s *Service) Record(ctx context.Context, guildID int64, delivered bool, reason string) error {
	if guildID == 0 {
		return ErrInvalidRequest
	}
	if !delivered && reason == "" {
		return ErrInvalidRequest
	}
	if s.repo == nil {
		return errors.New("reporting: repository not configured")
	}
	return s.repo.Add(ctx, Outcome{GuildID: guildID, Delivered: delivered, Reason: reason, At: s.clock()})
}

// GuildStats returns the counters of one guild. Unknown guilds report zeros.
func (s *Service) GuildStats(ctx context.Context, guildID int64) (DeliveryStats, error) {
	if guildID <= 0 {
		return DeliveryStats{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return DeliveryStats{}, errors.New("reporting: repository not configured")
	}
	return s.repo.Get(ctx, guildID)
}
