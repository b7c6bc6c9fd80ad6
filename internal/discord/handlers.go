package discord

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/channels"
	"guild-logger/internal/events"
	"guild-logger/internal/gateway"
)

// EventHandler receives converted events. *router.Router satisfies it.
type EventHandler interface {
	Handle(ctx context.Context, ev events.Event) error
}

// ChannelCache is kept in step with channel lifecycle events. *channels.Resolver satisfies it.
type ChannelCache interface {
	Remember(ctx context.Context, ch channels.Channel)
	Invalidate(ctx context.Context, id int64)
}

// Dispatcher converts gateway payloads and hands them to the router.
// Each discordgo callback runs on its own goroutine; Dispatcher holds no mutable state.
type Dispatcher struct {
	Events   EventHandler
	Channels ChannelCache

	// OnChannelDelete is called after the cache entry is dropped. Optional.
	OnChannelDelete func(ctx context.Context, channelID int64)

	// Ctx bounds every handler call; set it to the process lifetime context.
	Ctx context.Context
	Now func() time.Time
	Log *slog.Logger
}

func NewDispatcher(ctx context.Context, h EventHandler, cache ChannelCache, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{Events: h, Channels: cache, Ctx: ctx, Now: time.Now, Log: log}
}

// Register attaches every handler to s and returns a func that detaches them.
func (d *Dispatcher) Register(s *discordgo.Session) func() {
	removers := []func(){
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageCreate) { d.one(gateway.MessageCreate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageUpdate) { d.one(gateway.MessageEdit(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageDelete) { d.one(gateway.MessageDelete(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageDeleteBulk) { d.one(gateway.MessageBulkDelete(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageReactionAdd) { d.one(gateway.ReactionAdd(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageReactionRemove) { d.one(gateway.ReactionRemove(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageReactionRemoveAll) { d.one(gateway.ReactionClear(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.TypingStart) { d.one(gateway.TypingStart(e, d.now())) }),
		// Sticker updates and single-emoji clears have no typed event.
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.Event) { d.one(gateway.Raw(e, d.now())) }),

		s.AddHandler(func(_ *discordgo.Session, e *discordgo.VoiceStateUpdate) { d.many(gateway.VoiceStateUpdate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.StageInstanceEventCreate) { d.one(gateway.StageCreate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.StageInstanceEventUpdate) { d.one(gateway.StageUpdate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.StageInstanceEventDelete) { d.one(gateway.StageDelete(e, d.now())) }),

		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildUpdate) { d.one(gateway.GuildUpdate(e, d.now())) }),
		s.AddHandler(d.channelCreate),
		s.AddHandler(d.channelUpdate),
		s.AddHandler(d.channelDelete),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.ThreadCreate) { d.one(gateway.ThreadCreate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.ThreadUpdate) { d.one(gateway.ThreadUpdate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.ThreadDelete) { d.one(gateway.ThreadDelete(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.ThreadMembersUpdate) { d.one(gateway.ThreadMembersUpdate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildEmojisUpdate) { d.one(gateway.EmojisUpdate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.WebhooksUpdate) { d.one(gateway.WebhooksUpdate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildRoleCreate) { d.one(gateway.RoleCreate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildRoleUpdate) { d.one(gateway.RoleUpdate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildRoleDelete) { d.one(gateway.RoleDelete(e, d.now())) }),

		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildMemberAdd) { d.one(gateway.MemberJoin(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildMemberRemove) { d.one(gateway.MemberLeave(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildMemberUpdate) { d.many(gateway.MemberUpdate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildBanAdd) { d.one(gateway.MemberBan(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildBanRemove) { d.one(gateway.MemberUnban(e, d.now())) }),

		s.AddHandler(func(_ *discordgo.Session, e *discordgo.InviteCreate) { d.one(gateway.InviteCreate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.InviteDelete) { d.one(gateway.InviteDelete(e, d.now())) }),

		s.AddHandler(func(_ *discordgo.Session, e *discordgo.AutoModerationRuleCreate) { d.one(gateway.AutomodRuleCreate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.AutoModerationRuleUpdate) { d.one(gateway.AutomodRuleUpdate(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.AutoModerationRuleDelete) { d.one(gateway.AutomodRuleDelete(e, d.now())) }),
		s.AddHandler(func(_ *discordgo.Session, e *discordgo.AutoModerationActionExecution) { d.one(gateway.AutomodAction(e, d.now())) }),
	}
	return func() {
		for _, rm := range removers {
			rm()
		}
	}
}

func (d *Dispatcher) channelCreate(_ *discordgo.Session, e *discordgo.ChannelCreate) {
	if e != nil && e.Channel != nil && d.Channels != nil {
		d.Channels.Remember(d.ctx(), toChannel(e.Channel))
	}
	d.one(gateway.ChannelCreate(e, d.now()))
}

func (d *Dispatcher) channelUpdate(_ *discordgo.Session, e *discordgo.ChannelUpdate) {
	if e != nil && e.Channel != nil && d.Channels != nil {
		d.Channels.Remember(d.ctx(), toChannel(e.Channel))
	}
	d.one(gateway.ChannelUpdate(e, d.now()))
}

// channelDelete drops the cache entry before routing, so an entry about a deleted log
// channel is never sent to it.
func (d *Dispatcher) channelDelete(_ *discordgo.Session, e *discordgo.ChannelDelete) {
	if e == nil || e.Channel == nil {
		return
	}
	id, _ := strconv.ParseInt(e.ID, 10, 64)
	if d.Channels != nil && id != 0 {
		d.Channels.Invalidate(d.ctx(), id)
	}
	if d.OnChannelDelete != nil && id != 0 {
		d.OnChannelDelete(d.ctx(), id)
	}
	d.one(gateway.ChannelDelete(e, d.now()))
}

func (d *Dispatcher) one(ev events.Event, ok bool) {
	if !ok {
		return
	}
	d.dispatch(ev)
}

func (d *Dispatcher) many(evs []events.Event) {
	for _, ev := range evs {
		d.dispatch(ev)
	}
}

// dispatch never panics the gateway goroutine: store errors are already logged by the router.
func (d *Dispatcher) dispatch(ev events.Event) {
	defer func() {
		if p := recover(); p != nil {
			d.Log.Error("event handler panic", "kind", ev.Kind.String(), "guild_id", ev.GuildID, "panic", p)
		}
	}()
	if d.Events == nil {
		return
	}
	_ = d.Events.Handle(d.ctx(), ev)
}

func (d *Dispatcher) ctx() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

func (d *Dispatcher) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}
