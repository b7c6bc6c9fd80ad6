package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Intents covers every gateway event the logger converts.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentGuildModeration |
	discordgo.IntentsGuildEmojis |
	discordgo.IntentsGuildWebhooks |
	discordgo.IntentsGuildInvites |
	discordgo.IntentsGuildVoiceStates |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsGuildMessageTyping |
	discordgo.IntentsMessageContent |
	discordgo.IntentAutoModerationConfiguration |
	discordgo.IntentAutoModerationExecution

// maxCachedMessages bounds the state cache that supplies before-content for edits and deletes.
const maxCachedMessages = 1000

// NewSession builds a bot session with state tracking sized for audit logging.
// It does not connect.
func NewSession(token string, log *slog.Logger) (*discordgo.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("discord token is required")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	s.Identify.Intents = Intents
	s.StateEnabled = true
	s.State.MaxMessageCount = maxCachedMessages
	s.State.TrackVoice = true
	// Handlers run on their own goroutines.
	s.SyncEvents = false

	if log != nil {
		s.LogLevel = discordgo.LogWarning
		discordgo.Logger = SlogBridge(log)
	}
	return s, nil
}

// SlogBridge adapts slog to discordgo's package-level Logger hook.
func SlogBridge(log *slog.Logger) func(msgL, caller int, format string, a ...interface{}) {
	l := log.With("component", "discordgo")
	return func(msgL, caller int, format string, a ...interface{}) {
		msg := fmt.Sprintf(format, a...)
		switch msgL {
		case discordgo.LogError:
			l.Error(msg)
		case discordgo.LogWarning:
			l.Warn(msg)
		case discordgo.LogInformational:
			l.Info(msg)
		default:
			l.Debug(msg)
		}
	}
}
