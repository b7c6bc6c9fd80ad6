package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the only supported JWT claims shape for the operator API.
// GuildID scopes the token to one Discord server; super_admin tokens may still carry one.
// GuildID is a decimal snowflake string so it survives JSON number precision.
type Claims struct {
	jwt.RegisteredClaims

	UserID    string    `json:"user_id"`
	GuildID   string    `json:"guild_id"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
}
