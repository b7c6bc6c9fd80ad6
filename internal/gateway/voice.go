package gateway

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/events"
)

// VoiceStateUpdate converts one voice state change into zero or more events:
// at most one of join/leave/move, then self-mute and self-deafen transitions.
// A missing previous state is treated as "not connected".
func VoiceStateUpdate(v *discordgo.VoiceStateUpdate, now time.Time) []events.Event {
	if v == nil || v.VoiceState == nil {
		return nil
	}
	after := v.VoiceState
	before := v.BeforeUpdate
	if before == nil {
		before = &discordgo.VoiceState{}
	}

	actor := events.Actor{ID: snowflake(after.UserID)}
	if after.Member != nil && after.Member.User != nil {
		actor = actorOf(after.Member.User)
	}
	base := func(kind events.Kind) events.Event {
		return newEvent(kind, after.GuildID, actor, now).
			With(events.LabelUser, userIDMention(after.UserID))
	}

	var out []events.Event
	switch {
	case before.ChannelID == "" && after.ChannelID != "":
		out = append(out, base(events.VoiceJoin).With(events.LabelChannel, channelMention(after.ChannelID)))
	case before.ChannelID != "" && after.ChannelID == "":
		out = append(out, base(events.VoiceLeave).With(events.LabelChannel, channelMention(before.ChannelID)))
	case before.ChannelID != "" && before.ChannelID != after.ChannelID:
		out = append(out, base(events.VoiceMove).
			With(events.LabelBefore, channelMention(before.ChannelID)).
			With(events.LabelAfter, channelMention(after.ChannelID)))
	}

	// Leaving resets the flags; that is not a user toggle.
	if after.ChannelID == "" {
		return out
	}
	if before.SelfMute != after.SelfMute {
		kind := events.VoiceUnmute
		if after.SelfMute {
			kind = events.VoiceMute
		}
		out = append(out, base(kind).With(events.LabelChannel, channelMention(after.ChannelID)))
	}
	if before.SelfDeaf != after.SelfDeaf {
		kind := events.VoiceUndeafen
		if after.SelfDeaf {
			kind = events.VoiceDeafen
		}
		out = append(out, base(kind).With(events.LabelChannel, channelMention(after.ChannelID)))
	}
	return out
}

func StageCreate(s *discordgo.StageInstanceEventCreate, now time.Time) (events.Event, bool) {
	if s == nil || s.StageInstance == nil {
		return events.Event{}, false
	}
	return newEvent(events.StageCreate, s.GuildID, events.Actor{}, now).
		With(events.LabelChannel, channelMention(s.ChannelID)).
		With(events.LabelTopic, s.Topic), true
}

// StageUpdate has no previous topic on the wire; only the new one is reported.
func StageUpdate(s *discordgo.StageInstanceEventUpdate, now time.Time) (events.Event, bool) {
	if s == nil || s.StageInstance == nil {
		return events.Event{}, false
	}
	return newEvent(events.StageUpdate, s.GuildID, events.Actor{}, now).
		With(events.LabelChannel, channelMention(s.ChannelID)).
		With(events.LabelTopic, s.Topic), true
}

func StageDelete(s *discordgo.StageInstanceEventDelete, now time.Time) (events.Event, bool) {
	if s == nil || s.StageInstance == nil {
		return events.Event{}, false
	}
	return newEvent(events.StageDelete, s.GuildID, events.Actor{}, now).
		With(events.LabelChannel, channelMention(s.ChannelID)).
		With(events.LabelTopic, s.Topic), true
}
