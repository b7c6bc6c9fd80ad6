package main

import (
	"guild-logger/internal/httpapi"
	"guild-logger/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, authMW gin.HandlerFunc, h httpapi.Handlers) {
	// public
	r.GET("/healthz", h.Healthz)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(authMW)

	// GUILD SETTINGS routes
	// super_admin passes every role check; owner/viewer are limited to their own guild.
	read := httpapi.RequireGuildAndAnyRole(rbac.RoleOwner, rbac.RoleViewer)
	write := httpapi.RequireGuildAndAnyRole(rbac.RoleOwner)

	guilds := v1.Group("/guilds/:guild_id")
	{
		guilds.GET("/settings", append(read, h.GetSettings)...)
		guilds.GET("/stats", append(read, h.GetStats)...)

		guilds.PUT("/channel", append(write, h.PutChannel)...)
		guilds.PUT("/logging", append(write, h.PutLogging)...)
		guilds.PUT("/log-types/:category", append(write, h.PutLogType)...)
		guilds.PUT("/language", append(write, h.PutLanguage)...)
	}

	// ADMIN routes
	admin := v1.Group("/guilds/:guild_id")
	admin.Use(httpapi.RequireGuildAndAnyRole(rbac.RoleSuperAdmin)...)
	{
		admin.GET("/audit", h.GetAudit)
	}
}
