package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"guild-logger/internal/events"
	"guild-logger/internal/i18n"
)

// Embed limits enforced by the platform.
const (
	maxTitleLen       = 256
	maxDescriptionLen = 4096
	maxValueLen       = 1024
)

// Embed colours.
const (
	ColorSuccess = 0x43b581
	ColorError   = 0xf04747
	ColorWarning = 0xfaa61a
	ColorInfo    = 0x7289da
	ColorDefault = 0x2f3136
)

type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneWarning
	ToneError
)

func (t Tone) Color() int {
	switch t {
	case ToneSuccess:
		return ColorSuccess
	case ToneWarning:
		return ColorWarning
	case ToneError:
		return ColorError
	case ToneInfo:
		return ColorInfo
	default:
		return ColorDefault
	}
}

// Message is the platform-neutral log entry handed to a Sink.
type Message struct {
	Title       string
	Description string
	Color       int
	Footer      string
	Timestamp   time.Time
}

// tones maps every event kind to the colour of its log entry.
var tones = map[events.Kind]Tone{
	events.MessageCreate:      ToneInfo,
	events.MessageEdit:        ToneWarning,
	events.MessageDelete:      ToneError,
	events.MessageBulkDelete:  ToneError,
	events.ReactionAdd:        ToneSuccess,
	events.ReactionRemove:     ToneWarning,
	events.ReactionClear:      ToneError,
	events.ReactionClearEmoji: ToneWarning,
	events.TypingStart:        ToneInfo,

	events.VoiceJoin:     ToneSuccess,
	events.VoiceLeave:    ToneError,
	events.VoiceMove:     ToneInfo,
	events.VoiceMute:     ToneWarning,
	events.VoiceUnmute:   ToneSuccess,
	events.VoiceDeafen:   ToneWarning,
	events.VoiceUndeafen: ToneSuccess,
	events.StageCreate:   ToneSuccess,
	events.StageUpdate:   ToneWarning,
	events.StageDelete:   ToneError,

	events.GuildUpdate:         ToneWarning,
	events.ChannelCreate:       ToneSuccess,
	events.ChannelUpdate:       ToneWarning,
	events.ChannelDelete:       ToneError,
	events.ThreadCreate:        ToneSuccess,
	events.ThreadUpdate:        ToneWarning,
	events.ThreadDelete:        ToneError,
	events.ThreadMembersUpdate: ToneInfo,
	events.EmojisUpdate:        ToneInfo,
	events.StickersUpdate:      ToneWarning,
	events.WebhooksUpdate:      ToneInfo,
	events.RoleCreate:          ToneSuccess,
	events.RoleUpdate:          ToneWarning,
	events.RoleDelete:          ToneError,

	events.MemberJoin:          ToneSuccess,
	events.MemberLeave:         ToneError,
	events.MemberUpdate:        ToneWarning,
	events.MemberBan:           ToneError,
	events.MemberUnban:         ToneSuccess,
	events.MemberTimeout:       ToneWarning,
	events.MemberTimeoutRemove: ToneSuccess,

	events.InviteCreate: ToneSuccess,
	events.InviteDelete: ToneError,

	events.AutomodRuleCreate: ToneSuccess,
	events.AutomodRuleUpdate: ToneWarning,
	events.AutomodRuleDelete: ToneError,
	events.AutomodAction:     ToneError,
}

// ToneOf reports the tone of k. Unknown kinds render as ToneInfo.
func ToneOf(k events.Kind) (Tone, bool) {
	t, ok := tones[k]
	if !ok {
		return ToneInfo, false
	}
	return t, true
}

// TitleKey is the i18n key holding the entry title for k.
func TitleKey(k events.Kind) string { return "event." + k.String() }

// Formatter turns events into localised log entries. It is pure; the zero value is not usable.
type Formatter struct {
	now func() time.Time
}

func NewFormatter() *Formatter { return &Formatter{now: time.Now} }

// Format renders ev in lang.
func (f *Formatter) Format(ev events.Event, lang i18n.Language) Message {
	tone, _ := ToneOf(ev.Kind)

	ts := ev.OccurredAt
	if ts.IsZero() {
		ts = f.now()
	}

	msg := Message{
		Title:     truncate(i18n.Lookup(lang, TitleKey(ev.Kind)), maxTitleLen),
		Color:     tone.Color(),
		Timestamp: ts.UTC(),
	}

	var b strings.Builder
	for _, fl := range ev.Fields {
		v := strings.TrimSpace(fl.Value)
		if v == "" {
			v = i18n.Lookup(lang, "value.none")
		}
		line := fmt.Sprintf("**%s:** %s", i18n.Lookup(lang, fl.Label), truncate(v, maxValueLen))
		if b.Len() > 0 {
			line = "\n" + line
		}
		if b.Len()+len(line) > maxDescriptionLen {
			break
		}
		b.WriteString(line)
	}
	msg.Description = b.String()

	if ev.Actor.ID != 0 {
		msg.Footer = fmt.Sprintf("ID: %d", ev.Actor.ID)
	}
	return msg
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
