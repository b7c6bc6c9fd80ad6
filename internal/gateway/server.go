package gateway

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/events"
)

func GuildUpdate(g *discordgo.GuildUpdate, now time.Time) (events.Event, bool) {
	if g == nil || g.Guild == nil {
		return events.Event{}, false
	}
	return newEvent(events.GuildUpdate, g.ID, events.Actor{}, now).
		With(events.LabelServer, named(g.Name, g.ID)), true
}

func ChannelCreate(c *discordgo.ChannelCreate, now time.Time) (events.Event, bool) {
	if c == nil || c.Channel == nil || c.GuildID == "" {
		return events.Event{}, false
	}
	return newEvent(events.ChannelCreate, c.GuildID, events.Actor{}, now).
		With(events.LabelChannel, channelMention(c.ID)).
		With(events.LabelName, c.Name), true
}

// ChannelUpdate reports name and topic changes. Permission-only updates are skipped when
// the previous state is known.
func ChannelUpdate(c *discordgo.ChannelUpdate, now time.Time) (events.Event, bool) {
	if c == nil || c.Channel == nil || c.GuildID == "" {
		return events.Event{}, false
	}
	ev := newEvent(events.ChannelUpdate, c.GuildID, events.Actor{}, now).
		With(events.LabelChannel, channelMention(c.ID))
	if b := c.BeforeUpdate; b != nil {
		if b.Name == c.Name && b.Topic == c.Topic {
			return events.Event{}, false
		}
		if b.Name != c.Name {
			ev = ev.With(events.LabelBefore, b.Name).With(events.LabelAfter, c.Name)
		}
		if b.Topic != c.Topic {
			ev = ev.With(events.LabelTopic, c.Topic)
		}
		return ev, true
	}
	return ev.With(events.LabelName, c.Name), true
}

func ChannelDelete(c *discordgo.ChannelDelete, now time.Time) (events.Event, bool) {
	if c == nil || c.Channel == nil || c.GuildID == "" {
		return events.Event{}, false
	}
	return newEvent(events.ChannelDelete, c.GuildID, events.Actor{}, now).
		With(events.LabelName, named(c.Name, c.ID)), true
}

// ThreadCreate ignores the sync payloads Discord sends when the bot gains thread access.
func ThreadCreate(t *discordgo.ThreadCreate, now time.Time) (events.Event, bool) {
	if t == nil || t.Channel == nil || !t.NewlyCreated {
		return events.Event{}, false
	}
	return newEvent(events.ThreadCreate, t.GuildID, events.Actor{ID: snowflake(t.OwnerID)}, now).
		With(events.LabelThread, channelMention(t.ID)).
		With(events.LabelName, t.Name).
		With(events.LabelChannel, channelMention(t.ParentID)).
		With(events.LabelUser, userIDMention(t.OwnerID)), true
}

func ThreadUpdate(t *discordgo.ThreadUpdate, now time.Time) (events.Event, bool) {
	if t == nil || t.Channel == nil {
		return events.Event{}, false
	}
	ev := newEvent(events.ThreadUpdate, t.GuildID, events.Actor{}, now).
		With(events.LabelThread, channelMention(t.ID))
	if b := t.BeforeUpdate; b != nil && b.Name != t.Name {
		ev = ev.With(events.LabelBefore, b.Name).With(events.LabelAfter, t.Name)
	} else {
		ev = ev.With(events.LabelName, t.Name)
	}
	return ev, true
}

func ThreadDelete(t *discordgo.ThreadDelete, now time.Time) (events.Event, bool) {
	if t == nil || t.Channel == nil {
		return events.Event{}, false
	}
	return newEvent(events.ThreadDelete, t.GuildID, events.Actor{}, now).
		With(events.LabelThread, named(t.Name, t.ID)).
		With(events.LabelChannel, channelMention(t.ParentID)), true
}

func ThreadMembersUpdate(t *discordgo.ThreadMembersUpdate, now time.Time) (events.Event, bool) {
	if t == nil || (len(t.AddedMembers) == 0 && len(t.RemovedMembers) == 0) {
		return events.Event{}, false
	}
	added := make([]string, 0, len(t.AddedMembers))
	for _, m := range t.AddedMembers {
		if m.ThreadMember != nil {
			added = append(added, "<@"+m.UserID+">")
		}
	}
	removed := make([]string, 0, len(t.RemovedMembers))
	for _, id := range t.RemovedMembers {
		removed = append(removed, "<@"+id+">")
	}
	ev := newEvent(events.ThreadMembersUpdate, t.GuildID, events.Actor{}, now).
		With(events.LabelThread, channelMention(t.ID)).
		With(events.LabelCount, strconv.Itoa(t.MemberCount))
	if len(added) > 0 {
		ev = ev.With(events.LabelAdded, strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		ev = ev.With(events.LabelRemoved, strings.Join(removed, ", "))
	}
	return ev, true
}

func EmojisUpdate(e *discordgo.GuildEmojisUpdate, now time.Time) (events.Event, bool) {
	if e == nil {
		return events.Event{}, false
	}
	list := make([]string, 0, len(e.Emojis))
	for _, em := range e.Emojis {
		if em != nil {
			list = append(list, em.MessageFormat())
		}
	}
	return newEvent(events.EmojisUpdate, e.GuildID, events.Actor{}, now).
		With(events.LabelCount, strconv.Itoa(len(list))).
		With(events.LabelEmoji, strings.Join(list, " ")), true
}

func WebhooksUpdate(w *discordgo.WebhooksUpdate, now time.Time) (events.Event, bool) {
	if w == nil {
		return events.Event{}, false
	}
	return newEvent(events.WebhooksUpdate, w.GuildID, events.Actor{}, now).
		With(events.LabelChannel, channelMention(w.ChannelID)), true
}

func RoleCreate(r *discordgo.GuildRoleCreate, now time.Time) (events.Event, bool) {
	if r == nil || r.GuildRole == nil || r.Role == nil {
		return events.Event{}, false
	}
	return newEvent(events.RoleCreate, r.GuildID, events.Actor{}, now).
		With(events.LabelRole, roleMention(r.Role.ID)).
		With(events.LabelName, r.Role.Name), true
}

func RoleUpdate(r *discordgo.GuildRoleUpdate, now time.Time) (events.Event, bool) {
	if r == nil || r.GuildRole == nil || r.Role == nil {
		return events.Event{}, false
	}
	return newEvent(events.RoleUpdate, r.GuildID, events.Actor{}, now).
		With(events.LabelRole, roleMention(r.Role.ID)).
		With(events.LabelName, r.Role.Name), true
}

func RoleDelete(r *discordgo.GuildRoleDelete, now time.Time) (events.Event, bool) {
	if r == nil {
		return events.Event{}, false
	}
	return newEvent(events.RoleDelete, r.GuildID, events.Actor{}, now).
		With(events.LabelRole, "`"+r.RoleID+"`"), true
}
