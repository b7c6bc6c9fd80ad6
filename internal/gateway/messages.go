package gateway

import (
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/events"
)

func MessageCreate(m *discordgo.MessageCreate, now time.Time) (events.Event, bool) {
	if m == nil || m.Message == nil {
		return events.Event{}, false
	}
	at := m.Timestamp
	if at.IsZero() {
		at = now
	}
	return newEvent(events.MessageCreate, m.GuildID, actorOf(m.Author), at).
		With(events.LabelChannel, channelMention(m.ChannelID)).
		With(events.LabelUser, userMention(m.Author)).
		With(events.LabelContent, m.Content), true
}

// MessageEdit needs the cached previous message for the before text. Edits that do not
// change the content (embed unfurls, pins) are skipped.
func MessageEdit(m *discordgo.MessageUpdate, now time.Time) (events.Event, bool) {
	if m == nil || m.Message == nil {
		return events.Event{}, false
	}
	before := ""
	author := m.Author
	if m.BeforeUpdate != nil {
		before = m.BeforeUpdate.Content
		if author == nil {
			author = m.BeforeUpdate.Author
		}
		if before == m.Content {
			return events.Event{}, false
		}
	}
	if author == nil {
		// Partial update without an author is never a user edit.
		return events.Event{}, false
	}
	at := now
	if m.EditedTimestamp != nil {
		at = *m.EditedTimestamp
	}
	return newEvent(events.MessageEdit, m.GuildID, actorOf(author), at).
		With(events.LabelChannel, channelMention(m.ChannelID)).
		With(events.LabelUser, userMention(author)).
		With(events.LabelBefore, before).
		With(events.LabelAfter, m.Content), true
}

// MessageDelete reports the cached message when available; otherwise only the ids are known.
func MessageDelete(m *discordgo.MessageDelete, now time.Time) (events.Event, bool) {
	if m == nil || m.Message == nil {
		return events.Event{}, false
	}
	var author *discordgo.User
	content := ""
	if m.BeforeDelete != nil {
		author = m.BeforeDelete.Author
		content = m.BeforeDelete.Content
	}
	return newEvent(events.MessageDelete, m.GuildID, actorOf(author), now).
		With(events.LabelChannel, channelMention(m.ChannelID)).
		With(events.LabelUser, userMention(author)).
		With(events.LabelMessage, m.ID).
		With(events.LabelContent, content), true
}

func MessageBulkDelete(m *discordgo.MessageDeleteBulk, now time.Time) (events.Event, bool) {
	if m == nil || len(m.Messages) == 0 {
		return events.Event{}, false
	}
	return newEvent(events.MessageBulkDelete, m.GuildID, events.Actor{}, now).
		With(events.LabelChannel, channelMention(m.ChannelID)).
		With(events.LabelCount, strconv.Itoa(len(m.Messages))), true
}

func ReactionAdd(r *discordgo.MessageReactionAdd, now time.Time) (events.Event, bool) {
	if r == nil || r.MessageReaction == nil {
		return events.Event{}, false
	}
	actor := events.Actor{ID: snowflake(r.UserID)}
	if r.Member != nil && r.Member.User != nil {
		actor = actorOf(r.Member.User)
	}
	return reaction(events.ReactionAdd, r.MessageReaction, actor, now), true
}

// ReactionRemove carries no member payload, so bot reactions cannot be told apart here.
func ReactionRemove(r *discordgo.MessageReactionRemove, now time.Time) (events.Event, bool) {
	if r == nil || r.MessageReaction == nil {
		return events.Event{}, false
	}
	return reaction(events.ReactionRemove, r.MessageReaction, events.Actor{ID: snowflake(r.UserID)}, now), true
}

func ReactionClear(r *discordgo.MessageReactionRemoveAll, now time.Time) (events.Event, bool) {
	if r == nil || r.MessageReaction == nil {
		return events.Event{}, false
	}
	return newEvent(events.ReactionClear, r.GuildID, events.Actor{}, now).
		With(events.LabelChannel, channelMention(r.ChannelID)).
		With(events.LabelMessage, r.MessageID), true
}

// TypingStart carries only ids; bot typing cannot be filtered here.
func TypingStart(t *discordgo.TypingStart, now time.Time) (events.Event, bool) {
	if t == nil || t.UserID == "" {
		return events.Event{}, false
	}
	at := now
	if t.Timestamp > 0 {
		at = time.Unix(int64(t.Timestamp), 0)
	}
	return newEvent(events.TypingStart, t.GuildID, events.Actor{ID: snowflake(t.UserID)}, at).
		With(events.LabelUser, userIDMention(t.UserID)).
		With(events.LabelChannel, channelMention(t.ChannelID)), true
}

func reaction(kind events.Kind, r *discordgo.MessageReaction, actor events.Actor, now time.Time) events.Event {
	return newEvent(kind, r.GuildID, actor, now).
		With(events.LabelUser, userIDMention(r.UserID)).
		With(events.LabelChannel, channelMention(r.ChannelID)).
		With(events.LabelMessage, r.MessageID).
		With(events.LabelEmoji, emojiText(r.Emoji))
}
