package audit

import "time"

// Event is an immutable, append-only audit record of a settings change.
//
// Invariants:
// - Events are never updated or deleted.
// - guild_id is required.
// - actor capture is best-effort; audit failures never block a settings change.
type Event struct {
	ID      string `json:"id" db:"id"`
	GuildID int64  `json:"guild_id" db:"guild_id"`

	Type EventType `json:"type" db:"type"`

	// ActorUserID is the platform user or API subject that made the change (if known).
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorRole   string `json:"actor_role,omitempty" db:"actor_role"`
	// Source is where the change came from: menu, api or cli.
	Source string `json:"source,omitempty" db:"source"`

	Field string `json:"field" db:"field"`
	Value string `json:"value" db:"value"`

	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeSettingChange EventType = "setting_change"
)

const (
	SourceMenu = "menu"
	SourceAPI  = "api"
	SourceCLI  = "cli"
)
