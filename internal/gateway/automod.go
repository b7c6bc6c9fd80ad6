package gateway

import (
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/events"
)

func AutomodRuleCreate(r *discordgo.AutoModerationRuleCreate, now time.Time) (events.Event, bool) {
	if r == nil || r.AutoModerationRule == nil {
		return events.Event{}, false
	}
	return automodRule(events.AutomodRuleCreate, r.AutoModerationRule, now), true
}

func AutomodRuleUpdate(r *discordgo.AutoModerationRuleUpdate, now time.Time) (events.Event, bool) {
	if r == nil || r.AutoModerationRule == nil {
		return events.Event{}, false
	}
	return automodRule(events.AutomodRuleUpdate, r.AutoModerationRule, now), true
}

func AutomodRuleDelete(r *discordgo.AutoModerationRuleDelete, now time.Time) (events.Event, bool) {
	if r == nil || r.AutoModerationRule == nil {
		return events.Event{}, false
	}
	return automodRule(events.AutomodRuleDelete, r.AutoModerationRule, now), true
}

func automodRule(kind events.Kind, r *discordgo.AutoModerationRule, now time.Time) events.Event {
	return newEvent(kind, r.GuildID, events.Actor{ID: snowflake(r.CreatorID)}, now).
		With(events.LabelRule, named(r.Name, r.ID)).
		With(events.LabelUser, userIDMention(r.CreatorID))
}

func AutomodAction(a *discordgo.AutoModerationActionExecution, now time.Time) (events.Event, bool) {
	if a == nil {
		return events.Event{}, false
	}
	return newEvent(events.AutomodAction, a.GuildID, events.Actor{ID: snowflake(a.UserID)}, now).
		With(events.LabelUser, userIDMention(a.UserID)).
		With(events.LabelChannel, channelMention(a.ChannelID)).
		With(events.LabelRule, "`"+a.RuleID+"`").
		With(events.LabelAction, automodActionName(a.Action.Type)).
		With(events.LabelKeyword, a.MatchedKeyword).
		With(events.LabelContent, a.Content), true
}

func automodActionName(t discordgo.AutoModerationActionType) string {
	switch t {
	case discordgo.AutoModerationRuleActionBlockMessage:
		return "block_message"
	case discordgo.AutoModerationRuleActionSendAlertMessage:
		return "send_alert_message"
	case discordgo.AutoModerationRuleActionTimeout:
		return "timeout"
	default:
		return strconv.Itoa(int(t))
	}
}
