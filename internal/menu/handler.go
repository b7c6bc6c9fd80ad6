package menu

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/audit"
	"guild-logger/internal/channels"
	"guild-logger/internal/flagset"
	"guild-logger/internal/i18n"
	"guild-logger/internal/settings"
)

// Store is the part of settings.Service the menu mutates.
type Store interface {
	Effective(ctx context.Context, guildID int64) (settings.ServerConfig, error)
	SetLogChannel(ctx context.Context, guildID, channelID int64) error
	SetLoggingEnabled(ctx context.Context, guildID int64, enabled bool) error
	ToggleLogType(ctx context.Context, guildID int64, c flagset.Category) (bool, error)
	SetLanguage(ctx context.Context, guildID int64, lang i18n.Language) error
}

type ChannelResolver interface {
	Resolve(ctx context.Context, channelID int64) (channels.Channel, bool)
}

// Responder answers interactions. *discordgo.Session satisfies it.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// manageGuild is the permission set allowed to change settings.
const manageGuild = discordgo.PermissionManageGuild | discordgo.PermissionAdministrator

var (
	errBadSelection   = errors.New("menu: empty or invalid selection")
	errForeignChannel = errors.New("menu: channel not found in this guild")
)

// Handler serves the /settings and /ping commands and the menu components.
type Handler struct {
	Settings Store
	Channels ChannelResolver
	Version  string
	// SourceURL is linked from the main page. Optional.
	SourceURL string

	// Ctx bounds every interaction; set it to the process lifetime context.
	Ctx     context.Context
	Timeout time.Duration
	Log     *slog.Logger
}

func NewHandler(ctx context.Context, store Store, resolver ChannelResolver, version string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{Settings: store, Channels: resolver, Version: version, Ctx: ctx, Timeout: 10 * time.Second, Log: log}
}

// request carries what serve needs from the live session.
type request struct {
	responder Responder
	latency   time.Duration
	guildName string
}

// Handle is registered with Session.AddHandler.
func (h *Handler) Handle(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	ctx := h.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	req := request{responder: s, latency: s.HeartbeatLatency()}
	if s.State != nil {
		if g, err := s.State.Guild(ic.GuildID); err == nil {
			req.guildName = g.Name
		}
	}
	h.serve(ctx, req, ic.Interaction)
}

func (h *Handler) serve(ctx context.Context, req request, i *discordgo.Interaction) {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil || guildID == 0 {
		return
	}
	log := h.Log.With("guild_id", guildID, "interaction_id", i.ID)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case CommandSettings:
			h.show(ctx, req, i, guildID, PageMain, discordgo.InteractionResponseChannelMessageWithSource, log)
		case CommandPing:
			lang := i18n.Match(string(i.Locale))
			h.reply(req, i, i18n.Sprintf(lang, "menu.ping", req.latency.Milliseconds()), log)
		}

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		action, arg, ok := parseCustomID(data.CustomID)
		if !ok {
			return
		}
		page, mutating := target(action, arg)
		if mutating && !canManage(i) {
			h.reply(req, i, i18n.Lookup(i18n.Match(string(i.Locale)), "menu.forbidden"), log)
			return
		}
		if mutating {
			actx := audit.WithActor(ctx, audit.Actor{UserID: userID(i), Role: "member", Source: audit.SourceMenu})
			if err := h.apply(actx, guildID, action, arg, data.Values); err != nil {
				log.Warn("menu change failed", "action", action, "err", err)
				h.reply(req, i, i18n.Lookup(i18n.Match(string(i.Locale)), "menu.failed"), log)
				return
			}
		}
		h.show(ctx, req, i, guildID, page, discordgo.InteractionResponseUpdateMessage, log)
	}
}

// target returns the page shown after action and whether action changes settings.
func target(action, arg string) (Page, bool) {
	switch action {
	case actionSettings:
		return PageLogging, false
	case actionDetails:
		return PageDetails, false
	case actionBack:
		switch Page(arg) {
		case PageLogging, PageDetails:
			return Page(arg), false
		}
		return PageMain, false
	case actionCategory:
		return PageDetails, true
	case actionToggle, actionChannel, actionLanguage:
		return PageLogging, true
	}
	return PageMain, false
}

func (h *Handler) apply(ctx context.Context, guildID int64, action, arg string, values []string) error {
	switch action {
	case actionToggle:
		cfg, err := h.Settings.Effective(ctx, guildID)
		if err != nil {
			return err
		}
		return h.Settings.SetLoggingEnabled(ctx, guildID, !cfg.LoggingEnabled)
	case actionChannel:
		if len(values) != 1 {
			return errBadSelection
		}
		id, err := strconv.ParseInt(values[0], 10, 64)
		if err != nil {
			return errBadSelection
		}
		if h.Channels != nil {
			ch, ok := h.Channels.Resolve(ctx, id)
			if !ok || (ch.GuildID != 0 && ch.GuildID != guildID) {
				return errForeignChannel
			}
		}
		return h.Settings.SetLogChannel(ctx, guildID, id)
	case actionLanguage:
		if len(values) != 1 {
			return errBadSelection
		}
		lang, err := i18n.Parse(values[0])
		if err != nil {
			return err
		}
		return h.Settings.SetLanguage(ctx, guildID, lang)
	case actionCategory:
		_, err := h.Settings.ToggleLogType(ctx, guildID, flagset.Category(arg))
		return err
	}
	return nil
}

func (h *Handler) show(ctx context.Context, req request, i *discordgo.Interaction, guildID int64, p Page, kind discordgo.InteractionResponseType, log *slog.Logger) {
	v, err := h.view(ctx, guildID, req.guildName)
	if err != nil {
		log.Error("menu view failed", "err", err)
		h.reply(req, i, i18n.Lookup(i18n.Match(string(i.Locale)), "menu.failed"), log)
		return
	}
	embed, components := Render(p, v)
	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}
	if kind == discordgo.InteractionResponseChannelMessageWithSource {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := req.responder.InteractionRespond(i, &discordgo.InteractionResponse{Type: kind, Data: data}); err != nil {
		log.Warn("interaction respond failed", "page", string(p), "err", err)
	}
}

func (h *Handler) view(ctx context.Context, guildID int64, guildName string) (View, error) {
	cfg, err := h.Settings.Effective(ctx, guildID)
	if err != nil {
		return View{}, err
	}
	v := View{GuildName: guildName, Version: h.Version, Config: cfg, SourceURL: h.SourceURL}
	if cfg.LogChannelID != 0 {
		v.Channel = ChannelMissing
		if h.Channels != nil {
			if _, ok := h.Channels.Resolve(ctx, cfg.LogChannelID); ok {
				v.Channel = ChannelFound
			}
		}
	}
	return v, nil
}

func (h *Handler) reply(req request, i *discordgo.Interaction, content string, log *slog.Logger) {
	err := req.responder.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		log.Warn("interaction respond failed", "err", err)
	}
}

func canManage(i *discordgo.Interaction) bool {
	return i.Member != nil && i.Member.Permissions&manageGuild != 0
}

func userID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
