package settings

import (
	"errors"

	"guild-logger/internal/flagset"
	"guild-logger/internal/i18n"
)

// ServerConfig is the per-server logging configuration.
//
// Invariants:
// - At most one row per guild; absence of a row means all defaults.
// - LogChannelID == 0 never delivers, even when LoggingEnabled is true.
// - Rows are upserted by mutations and never deleted here.
type ServerConfig struct {
	GuildID        int64           `json:"guild_id"`
	LogChannelID   int64           `json:"log_channel_id"`
	LoggingEnabled bool            `json:"logging_enabled"`
	LogTypes       flagset.FlagSet `json:"-"`
	Language       i18n.Language   `json:"language"`
}

// Record is the stored row. LogTypes is kept encoded so that writes which do not
// touch categories leave the column byte-for-byte unchanged.
type Record struct {
	GuildID        int64  `db:"guild_id"`
	LogChannelID   int64  `db:"log_channel_id"`
	LoggingEnabled bool   `db:"logging_enabled"`
	LogTypes       string `db:"log_types"`
	Language       string `db:"language"`
}

// DefaultLogTypes is the column default for new rows.
var DefaultLogTypes = flagset.Encode(flagset.AllDisabled())

// Defaults returns the configuration a guild without a row behaves as.
func Defaults(guildID int64) ServerConfig {
	return ServerConfig{
		GuildID:  guildID,
		LogTypes: flagset.AllDisabled(),
		Language: i18n.Default,
	}
}

func (r Record) config() ServerConfig {
	return ServerConfig{
		GuildID:        r.GuildID,
		LogChannelID:   r.LogChannelID,
		LoggingEnabled: r.LoggingEnabled,
		LogTypes:       flagset.Decode(r.LogTypes),
		Language:       i18n.Language(r.Language).OrDefault(),
	}
}

// Field names used in change notifications.
const (
	FieldLogChannel     = "log_channel_id"
	FieldLoggingEnabled = "logging_enabled"
	FieldLogTypes       = "log_types"
	FieldLanguage       = "language"
)

// Change describes one applied mutation.
type Change struct {
	GuildID int64
	Field   string
	Value   string
}

var (
	ErrInvalidArgument = errors.New("settings: invalid argument")
	ErrNotConfigured   = errors.New("settings: repository not configured")
)
