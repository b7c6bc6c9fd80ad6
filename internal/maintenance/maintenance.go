package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"guild-logger/internal/channels"
	"guild-logger/internal/settings"
)

type ConfigLister interface {
	ListEnabled(ctx context.Context) ([]settings.ServerConfig, error)
	GuildsForChannel(ctx context.Context, channelID int64) ([]int64, error)
}

type ChannelResolver interface {
	Resolve(ctx context.Context, channelID int64) (channels.Channel, bool)
}

// Report summarises one sweep.
type Report struct {
	Checked int
	// Broken lists guilds whose log channel no longer resolves.
	Broken []int64
}

// Sweeper checks that enabled configurations still point at a reachable channel.
// It only reports; configurations are never rewritten.
type Sweeper struct {
	Settings ConfigLister
	Channels ChannelResolver
	Timeout  time.Duration
	Log      *slog.Logger
}

func NewSweeper(store ConfigLister, resolver ChannelResolver, log *slog.Logger) *Sweeper {
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{Settings: store, Channels: resolver, Timeout: 5 * time.Minute, Log: log}
}

func (s *Sweeper) Sweep(ctx context.Context) (Report, error) {
	if s.Settings == nil || s.Channels == nil {
		return Report{}, errors.New("maintenance: sweeper not configured")
	}
	cfgs, err := s.Settings.ListEnabled(ctx)
	if err != nil {
		return Report{}, err
	}
	var rep Report
	for _, cfg := range cfgs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Checked++
		if _, ok := s.Channels.Resolve(ctx, cfg.LogChannelID); !ok {
			rep.Broken = append(rep.Broken, cfg.GuildID)
			s.Log.Warn("log channel unreachable", "guild_id", cfg.GuildID, "channel_id", cfg.LogChannelID)
		}
	}
	s.Log.Info("channel sweep finished", "checked", rep.Checked, "broken", len(rep.Broken))
	return rep, nil
}

// OnChannelDelete logs every guild that was logging into the deleted channel.
func (s *Sweeper) OnChannelDelete(ctx context.Context, channelID int64) {
	if s.Settings == nil {
		return
	}
	ids, err := s.Settings.GuildsForChannel(ctx, channelID)
	if err != nil {
		s.Log.Error("guilds for deleted channel", "channel_id", channelID, "err", err)
		return
	}
	for _, id := range ids {
		s.Log.Warn("log channel deleted", "guild_id", id, "channel_id", channelID)
	}
}

// Attach schedules the sweep on c under the given spec.
func (s *Sweeper) Attach(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		runCtx := ctx
		if s.Timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, s.Timeout)
			defer cancel()
		}
		if _, err := s.Sweep(runCtx); err != nil {
			s.Log.Error("channel sweep failed", "err", err)
		}
	})
}

// NewCron returns a scheduler that skips a run while the previous one is still going.
func NewCron(log *slog.Logger) *cron.Cron {
	l := cronLogger{log: log.With("component", "cron")}
	return cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct{ log *slog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "err", err)...)
}
