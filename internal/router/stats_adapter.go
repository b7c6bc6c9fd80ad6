package router

import (
	"context"
	"log/slog"

	"guild-logger/internal/reporting"
)

// StatsAdapter bridges executed decisions to reporting.Service.
type StatsAdapter struct {
	Stats *reporting.Service
	Log   *slog.Logger
}

func (a StatsAdapter) RecordDecision(ctx context.Context, d Decision) {
	if a.Stats == nil {
		return
	}
	reason := d.Reason
	if d.Action == ActionDeliver {
		reason = ""
	}
	if err := a.Stats.Record(ctx, d.GuildID, d.Action == ActionDeliver, reason); err != nil && a.Log != nil {
		a.Log.Warn("delivery stats record failed", "guild_id", d.GuildID, "err", err)
	}
}
