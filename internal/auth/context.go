package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Identity is the verified caller of an operator API request.
type Identity struct {
	UserID string
	// GuildID is the server the token is scoped to; zero only for unscoped super_admin tokens.
	GuildID int64
	Role    string
}

// Identity parses the guild claim into the snowflake the API routes compare against.
func (c Claims) Identity() (Identity, error) {
	id := Identity{UserID: c.UserID, Role: c.Role}
	if c.GuildID == "" {
		return id, nil
	}
	gid, err := strconv.ParseInt(c.GuildID, 10, 64)
	if err != nil || gid <= 0 {
		return Identity{}, fmt.Errorf("guild_id %q is not a snowflake", c.GuildID)
	}
	id.GuildID = gid
	return id, nil
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

func UserID(ctx context.Context) (string, error) {
	if id, ok := IdentityFrom(ctx); ok && id.UserID != "" {
		return id.UserID, nil
	}
	return "", errors.New("user_id not in context")
}

func GuildID(ctx context.Context) (int64, error) {
	if id, ok := IdentityFrom(ctx); ok && id.GuildID != 0 {
		return id.GuildID, nil
	}
	return 0, errors.New("guild_id not in context")
}

func Role(ctx context.Context) (string, error) {
	if id, ok := IdentityFrom(ctx); ok && id.Role != "" {
		return id.Role, nil
	}
	return "", errors.New("role not in context")
}
