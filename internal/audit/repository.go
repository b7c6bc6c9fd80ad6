package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings_audit (
    id            UUID PRIMARY KEY,
    guild_id      BIGINT NOT NULL,
    type          TEXT NOT NULL,
    actor_user_id TEXT NOT NULL DEFAULT '',
    actor_role    TEXT NOT NULL DEFAULT '',
    source        TEXT NOT NULL DEFAULT '',
    field         TEXT NOT NULL,
    value         TEXT NOT NULL,
    message       TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS settings_audit_guild_created_idx ON settings_audit (guild_id, created_at DESC);
`

// PostgresRepo appends audit events to settings_audit. It never updates or deletes.
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

func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("audit: ensure schema: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const q = `
INSERT INTO settings_audit (
  id, guild_id, type, actor_user_id, actor_role, source, field, value, message, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.GuildID,
		e.Type,
		e.ActorUserID,
		e.ActorRole,
		e.Source,
		e.Field,
		e.Value,
		e.Message,
		e.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) Recent(ctx context.Context, guildID int64, limit int) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const q = `
SELECT id, guild_id, type, actor_user_id, actor_role, source, field, value, message, created_at
FROM settings_audit
WHERE guild_id = $1
ORDER BY created_at DESC
LIMIT $2
`
	rows, err := r.db.QueryContext(ctx, q, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID,
			&e.GuildID,
			&e.Type,
			&e.ActorUserID,
			&e.ActorRole,
			&e.Source,
			&e.Field,
			&e.Value,
			&e.Message,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
