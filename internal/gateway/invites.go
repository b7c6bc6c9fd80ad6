package gateway

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/events"
)

func InviteCreate(i *discordgo.InviteCreate, now time.Time) (events.Event, bool) {
	if i == nil || i.Invite == nil {
		return events.Event{}, false
	}
	ev := newEvent(events.InviteCreate, i.GuildID, actorOf(i.Inviter), now).
		With(events.LabelCode, i.Code).
		With(events.LabelChannel, channelMention(i.ChannelID)).
		With(events.LabelInviter, userMention(i.Inviter))
	if i.MaxAge > 0 {
		ev = ev.With(events.LabelUntil, timestamp(i.CreatedAt.Add(time.Duration(i.MaxAge)*time.Second)))
	}
	return ev, true
}

func InviteDelete(i *discordgo.InviteDelete, now time.Time) (events.Event, bool) {
	if i == nil {
		return events.Event{}, false
	}
	return newEvent(events.InviteDelete, i.GuildID, events.Actor{}, now).
		With(events.LabelCode, i.Code).
		With(events.LabelChannel, channelMention(i.ChannelID)), true
}
