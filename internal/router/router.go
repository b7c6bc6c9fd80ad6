package router

import (
	"context"
	"errors"
	"log/slog"

	"guild-logger/internal/channels"
	"guild-logger/internal/events"
	"guild-logger/internal/flagset"
	"guild-logger/internal/i18n"
	"guild-logger/internal/render"
	"guild-logger/internal/settings"
)

// Router decides, for every gateway event, whether and where a log entry is written.
//
// Pipeline:
//  1. guild scope
//  2. bot / own actor suppression
//  3. configuration lookup (store errors propagate)
//  4. logging enabled
//  5. category enabled (absent categories count as enabled)
//  6. channel resolution within the event's guild (soft failure)
//  7. format and send (send failure is logged, never returned)
//
// The router keeps no state between events. Events are handled independently and in
// delivery order; redelivered events produce duplicate entries.
type Router struct {
	Settings  ConfigStore
	Channels  ChannelResolver
	Formatter Formatter
	Sink      Sink

	// Stats is optional.
	Stats Recorder

	// SelfID is the service's own user id; its actions are never logged.
	SelfID int64

	Log *slog.Logger
}

type ConfigStore interface {
	Get(ctx context.Context, guildID int64) (settings.ServerConfig, bool, error)
}

type ChannelResolver interface {
	Resolve(ctx context.Context, channelID int64) (channels.Channel, bool)
}

type Formatter interface {
	Format(ev events.Event, lang i18n.Language) render.Message
}

type Sink interface {
	Send(ctx context.Context, ch channels.Channel, msg render.Message) error
}

// Recorder receives every executed decision.
type Recorder interface {
	RecordDecision(ctx context.Context, d Decision)
}

func New(store ConfigStore, resolver ChannelResolver, formatter Formatter, sink Sink, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{Settings: store, Channels: resolver, Formatter: formatter, Sink: sink, Log: log}
}

// Route evaluates the gate for ev. It performs reads only.
func (r *Router) Route(ctx context.Context, ev events.Event) (Decision, error) {
	if !ev.IsGuildScoped() {
		return drop(ev, ReasonNotGuildScoped), nil
	}
	if ev.Actor.Bot || (r.SelfID != 0 && ev.Actor.ID == r.SelfID) {
		return drop(ev, ReasonBotActor), nil
	}

	if r.Settings == nil {
		return Decision{}, errors.New("router: settings store not configured")
	}
	cfg, ok, err := r.Settings.Get(ctx, ev.GuildID)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return drop(ev, ReasonNoConfig), nil
	}
	if !cfg.LoggingEnabled {
		return drop(ev, ReasonLoggingDisabled), nil
	}
	if !flagset.IsEnabled(cfg.LogTypes, ev.Category()) {
		return drop(ev, ReasonCategoryDisabled), nil
	}

	if cfg.LogChannelID == 0 || r.Channels == nil {
		return drop(ev, ReasonChannelUnresolved), nil
	}
	ch, ok := r.Channels.Resolve(ctx, cfg.LogChannelID)
	if !ok {
		return drop(ev, ReasonChannelUnresolved), nil
	}
	// A server's entries are only ever posted inside that server.
	if ch.GuildID != 0 && ch.GuildID != ev.GuildID {
		r.Log.Warn("log channel belongs to another guild",
			"guild_id", ev.GuildID,
			"channel_id", ch.ID,
			"channel_guild_id", ch.GuildID,
		)
		return drop(ev, ReasonChannelUnresolved), nil
	}

	return Decision{
		GuildID:  ev.GuildID,
		Kind:     ev.Kind,
		Action:   ActionDeliver,
		Reason:   ReasonDelivered,
		Channel:  ch,
		Language: cfg.Language,
	}, nil
}

// Handle routes ev and executes the decision. Only configuration store errors are returned.
func (r *Router) Handle(ctx context.Context, ev events.Event) error {
	d, err := r.Route(ctx, ev)
	if err != nil {
		r.Log.Error("route failed", "guild_id", ev.GuildID, "kind", ev.Kind.String(), "err", err)
		return err
	}

	if d.Action == ActionDeliver {
		if r.Formatter == nil || r.Sink == nil {
			return errors.New("router: formatter or sink not configured")
		}
		msg := r.Formatter.Format(ev, d.Language)
		if err := r.Sink.Send(ctx, d.Channel, msg); err != nil {
			r.Log.Warn("log entry send failed",
				"guild_id", d.GuildID,
				"channel_id", d.Channel.ID,
				"kind", ev.Kind.String(),
				"err", err,
			)
			d.Action = ActionDrop
			d.Reason = ReasonSendFailed
		}
	} else {
		r.Log.Debug("event dropped", "guild_id", d.GuildID, "kind", ev.Kind.String(), "reason", d.Reason)
	}

	if r.Stats != nil && d.GuildID != 0 {
		r.Stats.RecordDecision(ctx, d)
	}
	return nil
}
