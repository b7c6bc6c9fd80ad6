package settings

import (
	"context"

	"guild-logger/internal/audit"
)

// AuditAdapter bridges the settings change hook to the shared audit.Service.
// The actor is taken from the context the caller attached with audit.WithActor.
type AuditAdapter struct {
	Audit *audit.Service
}

func (a AuditAdapter) LogSettingChange(ctx context.Context, c Change) error {
	if a.Audit == nil {
		return nil
	}
	return a.Audit.LogSettingChange(ctx, c.GuildID, c.Field, c.Value)
}
