package gateway

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/events"
)

func MemberJoin(m *discordgo.GuildMemberAdd, now time.Time) (events.Event, bool) {
	if m == nil || m.Member == nil || m.User == nil {
		return events.Event{}, false
	}
	ev := newEvent(events.MemberJoin, m.GuildID, actorOfMember(m.Member), now).
		With(events.LabelUser, userMention(m.User))
	if t, err := discordgo.SnowflakeTimestamp(m.User.ID); err == nil {
		ev = ev.With(events.LabelCreatedAt, timestamp(t))
	}
	return ev, true
}

func MemberLeave(m *discordgo.GuildMemberRemove, now time.Time) (events.Event, bool) {
	if m == nil || m.Member == nil || m.User == nil {
		return events.Event{}, false
	}
	return newEvent(events.MemberLeave, m.GuildID, actorOfMember(m.Member), now).
		With(events.LabelUser, userMention(m.User)), true
}

// MemberUpdate yields a member-update event for nickname or role changes and, separately,
// a timeout event when communication_disabled_until changes. Without the previous member
// state only the timeout can be judged, against now.
func MemberUpdate(m *discordgo.GuildMemberUpdate, now time.Time) []events.Event {
	if m == nil || m.Member == nil || m.User == nil {
		return nil
	}
	actor := actorOfMember(m.Member)
	var out []events.Event

	// Without the cached previous state no change can be proven, and a still
	// timed-out member would be reported again on every role or nick edit.
	b := m.BeforeUpdate
	if b == nil {
		return nil
	}

	removed, added := diffStrings(b.Roles, m.Roles)
	if b.Nick != m.Nick || len(added) > 0 || len(removed) > 0 {
		ev := newEvent(events.MemberUpdate, m.GuildID, actor, now).
			With(events.LabelUser, userMention(m.User))
		if b.Nick != m.Nick {
			ev = ev.With(events.LabelBefore, b.Nick).With(events.LabelAfter, m.Nick)
		}
		if len(added) > 0 {
			ev = ev.With(events.LabelAdded, roleList(added))
		}
		if len(removed) > 0 {
			ev = ev.With(events.LabelRemoved, roleList(removed))
		}
		out = append(out, ev)
	}

	before := activeUntil(b.CommunicationDisabledUntil, now)
	after := activeUntil(m.CommunicationDisabledUntil, now)

	switch {
	case after != nil && (before == nil || !before.Equal(*after)):
		out = append(out, newEvent(events.MemberTimeout, m.GuildID, actor, now).
			With(events.LabelUser, userMention(m.User)).
			With(events.LabelUntil, timestamp(*after)))
	case after == nil && before != nil:
		out = append(out, newEvent(events.MemberTimeoutRemove, m.GuildID, actor, now).
			With(events.LabelUser, userMention(m.User)))
	}
	return out
}

// activeUntil returns t when it is still in the future; an elapsed timeout counts as none.
func activeUntil(t *time.Time, now time.Time) *time.Time {
	if t == nil || !t.After(now) {
		return nil
	}
	return t
}

func MemberBan(b *discordgo.GuildBanAdd, now time.Time) (events.Event, bool) {
	if b == nil || b.User == nil {
		return events.Event{}, false
	}
	return newEvent(events.MemberBan, b.GuildID, actorOf(b.User), now).
		With(events.LabelUser, userMention(b.User)), true
}

func MemberUnban(b *discordgo.GuildBanRemove, now time.Time) (events.Event, bool) {
	if b == nil || b.User == nil {
		return events.Event{}, false
	}
	return newEvent(events.MemberUnban, b.GuildID, actorOf(b.User), now).
		With(events.LabelUser, userMention(b.User)), true
}
