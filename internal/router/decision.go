package router

import (
	"guild-logger/internal/channels"
	"guild-logger/internal/events"
	"guild-logger/internal/i18n"
)

// Decision is the output of Route: deliver to Channel in Language, or drop with Reason.
//
// It carries only what Handle needs to execute the decision.
type Decision struct {
	GuildID int64       `json:"guild_id"`
	Kind    events.Kind `json:"-"`

	Action Action `json:"action"`
	Reason string `json:"reason"`

	Channel  channels.Channel `json:"-"`
	Language i18n.Language    `json:"-"`
}

type Action string

const (
	ActionDeliver Action = "deliver"
	ActionDrop    Action = "drop"
)

// Drop reasons, also used as delivery statistics keys.
const (
	ReasonDelivered         = "delivered"
	ReasonNotGuildScoped    = "not_guild_scoped"
	ReasonBotActor          = "bot_actor"
	ReasonNoConfig          = "no_config"
	ReasonLoggingDisabled   = "logging_disabled"
	ReasonCategoryDisabled  = "category_disabled"
	ReasonChannelUnresolved = "channel_unresolved"
	ReasonSendFailed        = "send_failed"
)

func drop(ev events.Event, reason string) Decision {
	return Decision{GuildID: ev.GuildID, Kind: ev.Kind, Action: ActionDrop, Reason: reason}
}
