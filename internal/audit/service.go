package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// Writes are append-only. No Update/Delete methods are provided.
type Repository interface {
	Append(ctx context.Context, e Event) error
	// Recent returns the newest events of a guild, newest first.
	Recent(ctx context.Context, guildID int64, limit int) ([]Event, error)
}

// Service records settings changes.
//
// IMPORTANT:
// - Audit is internal-only; the HTTP API exposes it to super_admin only.
// - Callers treat audit logging as best-effort.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

const maxRecent = 200

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.GuildID == 0 {
		return ErrInvalidEvent
	}
	if e.Type == "" || e.Field == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogSettingChange records one field change, taking the actor from ctx.
func (s *Service) LogSettingChange(ctx context.Context, guildID int64, field, value string) error {
	a := ActorFromContext(ctx)
	return s.Append(ctx, Event{
		GuildID:     guildID,
		Type:        EventTypeSettingChange,
		ActorUserID: a.UserID,
		ActorRole:   a.Role,
		Source:      a.Source,
		Field:       field,
		Value:       value,
		Message:     "setting changed",
	})
}

// Recent lists up to limit events of a guild, newest first.
func (s *Service) Recent(ctx context.Context, guildID int64, limit int) ([]Event, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	if guildID <= 0 {
		return nil, ErrInvalidEvent
	}
	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}
	return s.repo.Recent(ctx, guildID, limit)
}
