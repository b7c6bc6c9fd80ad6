package gateway

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/events"
)

// Dispatch types discordgo delivers only as raw *discordgo.Event.
const (
	typeStickersUpdate      = "GUILD_STICKERS_UPDATE"
	typeReactionRemoveEmoji = "MESSAGE_REACTION_REMOVE_EMOJI"
)

// StickersUpdatePayload is the GUILD_STICKERS_UPDATE dispatch body.
type StickersUpdatePayload struct {
	GuildID  string               `json:"guild_id"`
	Stickers []*discordgo.Sticker `json:"stickers"`
}

// ReactionRemoveEmojiPayload is the MESSAGE_REACTION_REMOVE_EMOJI dispatch body.
type ReactionRemoveEmojiPayload struct {
	GuildID   string          `json:"guild_id"`
	ChannelID string          `json:"channel_id"`
	MessageID string          `json:"message_id"`
	Emoji     discordgo.Emoji `json:"emoji"`
}

// Raw converts the untyped dispatches the logger cares about. Other types and
// undecodable payloads are skipped.
func Raw(e *discordgo.Event, now time.Time) (events.Event, bool) {
	if e == nil || len(e.RawData) == 0 {
		return events.Event{}, false
	}
	switch e.Type {
	case typeStickersUpdate:
		var p StickersUpdatePayload
		if err := json.Unmarshal(e.RawData, &p); err != nil {
			return events.Event{}, false
		}
		return StickersUpdate(&p, now)
	case typeReactionRemoveEmoji:
		var p ReactionRemoveEmojiPayload
		if err := json.Unmarshal(e.RawData, &p); err != nil {
			return events.Event{}, false
		}
		return ReactionClearEmoji(&p, now)
	}
	return events.Event{}, false
}

func StickersUpdate(p *StickersUpdatePayload, now time.Time) (events.Event, bool) {
	if p == nil || p.GuildID == "" {
		return events.Event{}, false
	}
	names := make([]string, 0, len(p.Stickers))
	for _, st := range p.Stickers {
		if st != nil && st.Name != "" {
			names = append(names, st.Name)
		}
	}
	ev := newEvent(events.StickersUpdate, p.GuildID, events.Actor{}, now).
		With(events.LabelCount, strconv.Itoa(len(p.Stickers)))
	if len(names) > 0 {
		ev = ev.With(events.LabelStickers, strings.Join(names, ", "))
	}
	return ev, true
}

func ReactionClearEmoji(p *ReactionRemoveEmojiPayload, now time.Time) (events.Event, bool) {
	if p == nil || p.MessageID == "" {
		return events.Event{}, false
	}
	return newEvent(events.ReactionClearEmoji, p.GuildID, events.Actor{}, now).
		With(events.LabelEmoji, emojiText(p.Emoji)).
		With(events.LabelChannel, channelMention(p.ChannelID)).
		With(events.LabelMessage, p.MessageID), true
}
