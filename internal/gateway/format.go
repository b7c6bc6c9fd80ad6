package gateway

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/events"
)

// snowflake parses a Discord id. Empty or malformed ids yield 0.
func snowflake(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func actorOf(u *discordgo.User) events.Actor {
	if u == nil {
		return events.Actor{}
	}
	return events.Actor{ID: snowflake(u.ID), Name: u.Username, Bot: u.Bot}
}

func actorOfMember(m *discordgo.Member) events.Actor {
	if m == nil {
		return events.Actor{}
	}
	return actorOf(m.User)
}

func userMention(u *discordgo.User) string {
	if u == nil || u.ID == "" {
		return ""
	}
	return fmt.Sprintf("<@%s> (`%s`)", u.ID, u.ID)
}

func userIDMention(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("<@%s> (`%s`)", id, id)
}

func channelMention(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("<#%s> (`%s`)", id, id)
}

func roleMention(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("<@&%s> (`%s`)", id, id)
}

func named(name, id string) string {
	switch {
	case name == "" && id == "":
		return ""
	case name == "":
		return fmt.Sprintf("`%s`", id)
	case id == "":
		return name
	default:
		return fmt.Sprintf("%s (`%s`)", name, id)
	}
}

func emojiText(e discordgo.Emoji) string {
	if e.ID == "" {
		return e.Name
	}
	return e.MessageFormat()
}

// timestamp renders t as a Discord timestamp tag, which clients show in local time.
func timestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:F>", t.Unix())
}

func roleList(ids []string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("<@&%s>", id))
	}
	return strings.Join(parts, ", ")
}

// diffStrings returns the elements only in a and only in b, each in input order.
func diffStrings(a, b []string) (onlyA, onlyB []string) {
	inA := make(map[string]struct{}, len(a))
	for _, s := range a {
		inA[s] = struct{}{}
	}
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := inB[s]; !ok {
			onlyA = append(onlyA, s)
		}
	}
	for _, s := range b {
		if _, ok := inA[s]; !ok {
			onlyB = append(onlyB, s)
		}
	}
	return onlyA, onlyB
}

func newEvent(kind events.Kind, guildID string, actor events.Actor, at time.Time) events.Event {
	return events.Event{Kind: kind, GuildID: snowflake(guildID), Actor: actor, OccurredAt: at}
}
