package events

import (
	"time"

	"guild-logger/internal/flagset"
)

// Actor is whoever caused the event. Zero ID means the gateway did not say.
type Actor struct {
	ID   int64
	Name string
	Bot  bool
}

// Field is one labelled line of an event record.
// Label is a localisation key (see the Label* constants); Value is already display-ready.
type Field struct {
	Label string
	Value string
}

// Event is the platform-neutral form of a gateway event.
//
// GuildID is zero for events that are not scoped to a server (DMs, group DMs).
type Event struct {
	Kind       Kind
	GuildID    int64
	Actor      Actor
	Fields     []Field
	OccurredAt time.Time
}

func (e Event) Category() flagset.Category { return e.Kind.Category() }

func (e Event) IsGuildScoped() bool { return e.GuildID != 0 }

// With appends a field and returns the event for chaining in adapters.
func (e Event) With(label, value string) Event {
	e.Fields = append(e.Fields, Field{Label: label, Value: value})
	return e
}

// Field label keys. The render package resolves them through i18n.
const (
	LabelUser      = "field.user"
	LabelChannel   = "field.channel"
	LabelServer    = "field.server"
	LabelContent   = "field.content"
	LabelBefore    = "field.before"
	LabelAfter     = "field.after"
	LabelCount     = "field.count"
	LabelEmoji     = "field.emoji"
	LabelMessage   = "field.message"
	LabelTopic     = "field.topic"
	LabelName      = "field.name"
	LabelCode      = "field.code"
	LabelInviter   = "field.inviter"
	LabelRole      = "field.role"
	LabelRule      = "field.rule"
	LabelAction    = "field.action"
	LabelKeyword   = "field.keyword"
	LabelUntil     = "field.until"
	LabelCreatedAt = "field.created_at"
	LabelAdded     = "field.added"
	LabelRemoved   = "field.removed"
	LabelNickname  = "field.nickname"
	LabelRoles     = "field.roles"
	LabelThread    = "field.thread"
	LabelStickers  = "field.stickers"
)
