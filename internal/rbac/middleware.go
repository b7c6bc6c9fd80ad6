package rbac

import (
	"net/http"
	"strconv"

	"guild-logger/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireGuild enforces guild isolation: the :guild_id path parameter, parsed the same
// way the handlers parse it, must equal the token's guild. super_admin may address any guild.
func RequireGuild() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := auth.Role(c.Request.Context())
		if IsSuperAdmin(role) {
			c.Next()
			return
		}

		gid, err := auth.GuildID(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "guild_id required"})
			return
		}
		if p := c.Param("guild_id"); p != "" {
			want, err := strconv.ParseInt(p, 10, 64)
			if err != nil || want <= 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "guild_id must be a snowflake"})
				return
			}
			if want != gid {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
		}
		c.Next()
	}
}

// RequireAnyRole allows access if the caller has any of the provided roles.
// Rules:
// - super_admin bypasses all checks
// - unknown roles are always denied
// - guild isolation is enforced via RequireGuild (use it in the chain)
func RequireAnyRole(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, err := auth.Role(c.Request.Context())
		if err != nil || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "role required"})
			return
		}

		if IsSuperAdmin(role) {
			c.Next()
			return
		}

		if !IsKnownRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
