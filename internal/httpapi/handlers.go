package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"guild-logger/internal/audit"
	"guild-logger/internal/auth"
	"guild-logger/internal/channels"
	"guild-logger/internal/flagset"
	"guild-logger/internal/i18n"
	"guild-logger/internal/rbac"
	"guild-logger/internal/reporting"
	"guild-logger/internal/settings"
	"guild-logger/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
// Snowflake ids travel as decimal strings.
type Handlers struct {
	Settings *settings.Service
	Stats    *reporting.Service
	Audit    *audit.Service

	// Channels validates channel ids before they are stored. Optional.
	Channels ChannelResolver

	// Ping checks backing stores for /healthz. Optional.
	Ping func(ctx context.Context) error
}

// ChannelResolver is satisfied by *channels.Resolver.
type ChannelResolver interface {
	Resolve(ctx context.Context, channelID int64) (channels.Channel, bool)
}

// --- Health ---

func (h Handlers) Healthz(c *gin.Context) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			logger.FromGin(c).Warn("health check failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --- Settings ---

type settingsResponse struct {
	GuildID        string          `json:"guild_id"`
	Configured     bool            `json:"configured"`
	LogChannelID   string          `json:"log_channel_id"`
	LoggingEnabled bool            `json:"logging_enabled"`
	LogTypes       map[string]bool `json:"log_types"`
	Language       string          `json:"language"`
}

func toResponse(cfg settings.ServerConfig, configured bool) settingsResponse {
	types := make(map[string]bool)
	for _, cat := range cfg.LogTypes.Categories() {
		types[string(cat)] = flagset.IsEnabled(cfg.LogTypes, cat)
	}
	// Absent default categories pass the gate.
	for _, cat := range flagset.Categories() {
		if _, ok := types[string(cat)]; !ok {
			types[string(cat)] = true
		}
	}
	return settingsResponse{
		GuildID:        strconv.FormatInt(cfg.GuildID, 10),
		Configured:     configured,
		LogChannelID:   strconv.FormatInt(cfg.LogChannelID, 10),
		LoggingEnabled: cfg.LoggingEnabled,
		LogTypes:       types,
		Language:       string(cfg.Language.OrDefault()),
	}
}

func (h Handlers) GetSettings(c *gin.Context) {
	if h.Settings == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "settings not configured"})
		return
	}
	guildID, ok := guildParam(c)
	if !ok {
		return
	}
	cfg, found, err := h.Settings.Get(c.Request.Context(), guildID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		cfg = settings.Defaults(guildID)
	}
	c.JSON(http.StatusOK, toResponse(cfg, found))
}

type channelRequest struct {
	ChannelID string `json:"channel_id"`
}

// PutChannel sets the log channel. "0" unsets it; other ids must resolve inside the guild.
func (h Handlers) PutChannel(c *gin.Context) {
	guildID, ok := h.guildForWrite(c)
	if !ok {
		return
	}
	var req channelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	channelID, err := strconv.ParseInt(req.ChannelID, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "channel_id must be a snowflake"})
		return
	}
	if channelID != 0 && h.Channels != nil {
		ch, found := h.Channels.Resolve(c.Request.Context(), channelID)
		if !found {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "channel not found"})
			return
		}
		if ch.GuildID != 0 && ch.GuildID != guildID {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "channel belongs to another guild"})
			return
		}
	}
	if err := h.Settings.SetLogChannel(apiActor(c), guildID, channelID); err != nil {
		h.fail(c, err)
		return
	}
	h.GetSettings(c)
}

type toggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// PutLogging switches logging. Enabling resets every category to enabled.
func (h Handlers) PutLogging(c *gin.Context) {
	guildID, ok := h.guildForWrite(c)
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "enabled required"})
		return
	}
	if err := h.Settings.SetLoggingEnabled(apiActor(c), guildID, *req.Enabled); err != nil {
		h.fail(c, err)
		return
	}
	h.GetSettings(c)
}

func (h Handlers) PutLogType(c *gin.Context) {
	guildID, ok := h.guildForWrite(c)
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "enabled required"})
		return
	}
	cat := flagset.Category(c.Param("category"))
	if _, err := h.Settings.UpdateLogType(apiActor(c), guildID, cat, *req.Enabled); err != nil {
		h.fail(c, err)
		return
	}
	h.GetSettings(c)
}

type languageRequest struct {
	Language string `json:"language"`
}

func (h Handlers) PutLanguage(c *gin.Context) {
	guildID, ok := h.guildForWrite(c)
	if !ok {
		return
	}
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	lang, err := i18n.Parse(req.Language)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unsupported language"})
		return
	}
	if err := h.Settings.SetLanguage(apiActor(c), guildID, lang); err != nil {
		h.fail(c, err)
		return
	}
	h.GetSettings(c)
}

// --- Stats ---

func (h Handlers) GetStats(c *gin.Context) {
	if h.Stats == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "stats not configured"})
		return
	}
	guildID, ok := guildParam(c)
	if !ok {
		return
	}
	st, err := h.Stats.GuildStats(c.Request.Context(), guildID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": st, "delivery_rate": st.DeliveryRate()})
}

// --- Audit ---

// GetAudit lists recent settings changes. RBAC: super_admin only.
func (h Handlers) GetAudit(c *gin.Context) {
	if h.Audit == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "audit not configured"})
		return
	}
	guildID, ok := guildParam(c)
	if !ok {
		return
	}
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	evs, err := h.Audit.Recent(c.Request.Context(), guildID, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": evs})
}

// Convenience middleware bundles.

func RequireGuildAndAnyRole(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{rbac.RequireGuild(), rbac.RequireAnyRole(roles...)}
}

func (h Handlers) guildForWrite(c *gin.Context) (int64, bool) {
	if h.Settings == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "settings not configured"})
		return 0, false
	}
	return guildParam(c)
}

func guildParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("guild_id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "guild_id must be a snowflake"})
		return 0, false
	}
	return id, true
}

// apiActor attaches the token identity to the request context for the audit trail.
func apiActor(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	uid, _ := auth.UserID(ctx)
	role, _ := auth.Role(ctx)
	return audit.WithActor(ctx, audit.Actor{UserID: uid, Role: role, Source: audit.SourceAPI})
}

func (h Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, settings.ErrInvalidArgument),
		errors.Is(err, reporting.ErrInvalidRequest),
		errors.Is(err, audit.ErrInvalidEvent):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.FromGin(c).Error("request failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
