package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"guild-logger/pkg/utils"
)

// Repository is the persistence contract for server configuration.
//
// Every write is a single-statement upsert keyed by guild_id. No Delete is provided.
type Repository interface {
	Get(ctx context.Context, guildID int64) (Record, bool, error)

	UpsertChannel(ctx context.Context, guildID, channelID int64) error
	// EnableLogging sets logging_enabled and overwrites log_types in one statement.
	EnableLogging(ctx context.Context, guildID int64, logTypes string) error
	// DisableLogging flips only logging_enabled; a new row gets column defaults.
	DisableLogging(ctx context.Context, guildID int64) error
	UpsertLogTypes(ctx context.Context, guildID int64, logTypes string) error
	UpsertLanguage(ctx context.Context, guildID int64, language string) error

	GuildsForChannel(ctx context.Context, channelID int64) ([]int64, error)
	ListEnabled(ctx context.Context) ([]Record, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS bot_settings (
    guild_id        BIGINT PRIMARY KEY,
    log_channel_id  BIGINT NOT NULL DEFAULT 0,
    logging_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    log_types       TEXT NOT NULL DEFAULT 'message:0,invite:0,server:0,voice:0,automod:0,user:0',
    language        TEXT NOT NULL DEFAULT 'en'
);
CREATE INDEX IF NOT EXISTS bot_settings_channel_guild_idx ON bot_settings (log_channel_id, guild_id);
`

// PostgresRepo stores configuration in the bot_settings table.
// Each statement runs under its own timeout derived from the caller's context.
type PostgresRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresRepo(db *sql.DB, commandTimeout time.Duration) *PostgresRepo {
	if commandTimeout <= 0 {
		commandTimeout = 60 * time.Second
	}
	return &PostgresRepo{db: db, timeout: commandTimeout}
}

// EnsureSchema creates the table and its index if they are missing.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("settings: ensure schema: %w", err)
		}
		return nil
	})
}

func (r *PostgresRepo) Get(ctx context.Context, guildID int64) (Record, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const q = `
SELECT guild_id, log_channel_id, logging_enabled, log_types, language
FROM bot_settings
WHERE guild_id = $1
`
	var rec Record
	if err := r.db.QueryRowContext(ctx, q, guildID).Scan(
		&rec.GuildID,
		&rec.LogChannelID,
		&rec.LoggingEnabled,
		&rec.LogTypes,
		&rec.Language,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	return rec, true, nil
}

func (r *PostgresRepo) UpsertChannel(ctx context.Context, guildID, channelID int64) error {
	const q = `
INSERT INTO bot_settings (guild_id, log_channel_id)
VALUES ($1, $2)
ON CONFLICT (guild_id)
DO UPDATE SET log_channel_id = EXCLUDED.log_channel_id
`
	return r.exec(ctx, q, guildID, channelID)
}

func (r *PostgresRepo) EnableLogging(ctx context.Context, guildID int64, logTypes string) error {
	const q = `
INSERT INTO bot_settings (guild_id, logging_enabled, log_types)
VALUES ($1, TRUE, $2)
ON CONFLICT (guild_id)
DO UPDATE SET logging_enabled = TRUE,
              log_types = EXCLUDED.log_types
`
	return r.exec(ctx, q, guildID, logTypes)
}

func (r *PostgresRepo) DisableLogging(ctx context.Context, guildID int64) error {
	const q = `
INSERT INTO bot_settings (guild_id, logging_enabled)
VALUES ($1, FALSE)
ON CONFLICT (guild_id)
DO UPDATE SET logging_enabled = FALSE
`
	return r.exec(ctx, q, guildID)
}

func (r *PostgresRepo) UpsertLogTypes(ctx context.Context, guildID int64, logTypes string) error {
	const q = `
INSERT INTO bot_settings (guild_id, log_channel_id, log_types)
VALUES ($1, 0, $2)
ON CONFLICT (guild_id)
DO UPDATE SET log_types = EXCLUDED.log_types
`
	return r.exec(ctx, q, guildID, logTypes)
}

func (r *PostgresRepo) UpsertLanguage(ctx context.Context, guildID int64, language string) error {
	const q = `
INSERT INTO bot_settings (guild_id, language)
VALUES ($1, $2)
ON CONFLICT (guild_id)
DO UPDATE SET language = EXCLUDED.language
`
	return r.exec(ctx, q, guildID, language)
}

func (r *PostgresRepo) GuildsForChannel(ctx context.Context, channelID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const q = `
SELECT guild_id
FROM bot_settings
WHERE log_channel_id = $1
ORDER BY guild_id
`
	rows, err := r.db.QueryContext(ctx, q, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListEnabled(ctx context.Context) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const q = `
SELECT guild_id, log_channel_id, logging_enabled, log_types, language
FROM bot_settings
WHERE logging_enabled AND log_channel_id <> 0
ORDER BY guild_id
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.GuildID,
			&rec.LogChannelID,
			&rec.LoggingEnabled,
			&rec.LogTypes,
			&rec.Language,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) exec(ctx context.Context, q string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}
