package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"guild-logger/internal/flagset"
	"guild-logger/internal/i18n"
)

// AuditLogger receives applied changes. Failures are logged and never fail the mutation.
type AuditLogger interface {
	LogSettingChange(ctx context.Context, c Change) error
}

// Service is the configuration store used by the router, the settings menu and the HTTP API.
//
// Every repository error is returned wrapped; nothing is retried. The only exception is
// Language, which falls back to the default and logs.
type Service struct {
	repo  Repository
	audit AuditLogger
	log   *slog.Logger
}

// NewService builds a Service. audit may be nil.
func NewService(repo Repository, audit AuditLogger, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, audit: audit, log: log}
}

// Get is a point lookup. It never creates a row.
func (s *Service) Get(ctx context.Context, guildID int64) (ServerConfig, bool, error) {
	if err := s.check(guildID); err != nil {
		return ServerConfig{}, false, err
	}
	rec, ok, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return ServerConfig{}, false, fmt.Errorf("settings: get: %w", err)
	}
	if !ok {
		return ServerConfig{}, false, nil
	}
	return rec.config(), true, nil
}

// Effective returns the stored configuration or the defaults a missing row stands for.
// Defaults are not persisted.
func (s *Service) Effective(ctx context.Context, guildID int64) (ServerConfig, error) {
	cfg, ok, err := s.Get(ctx, guildID)
	if err != nil {
		return ServerConfig{}, err
	}
	if !ok {
		return Defaults(guildID), nil
	}
	return cfg, nil
}

// SetLogChannel stores the destination channel. 0 unsets it.
func (s *Service) SetLogChannel(ctx context.Context, guildID, channelID int64) error {
	if err := s.check(guildID); err != nil {
		return err
	}
	if channelID < 0 {
		return ErrInvalidArgument
	}
	if err := s.repo.UpsertChannel(ctx, guildID, channelID); err != nil {
		return fmt.Errorf("settings: set log channel: %w", err)
	}
	s.notify(ctx, Change{GuildID: guildID, Field: FieldLogChannel, Value: strconv.FormatInt(channelID, 10)})
	return nil
}

// SetLoggingEnabled switches logging on or off.
//
// Enabling also resets every category to enabled, discarding per-category choices.
// Disabling flips only the boolean and leaves log_types untouched.
func (s *Service) SetLoggingEnabled(ctx context.Context, guildID int64, enabled bool) error {
	if err := s.check(guildID); err != nil {
		return err
	}
	if enabled {
		types := flagset.Encode(flagset.AllEnabled())
		if err := s.repo.EnableLogging(ctx, guildID, types); err != nil {
			return fmt.Errorf("settings: enable logging: %w", err)
		}
		s.notify(ctx, Change{GuildID: guildID, Field: FieldLoggingEnabled, Value: "true"})
		s.notify(ctx, Change{GuildID: guildID, Field: FieldLogTypes, Value: types})
		return nil
	}
	if err := s.repo.DisableLogging(ctx, guildID); err != nil {
		return fmt.Errorf("settings: disable logging: %w", err)
	}
	s.notify(ctx, Change{GuildID: guildID, Field: FieldLoggingEnabled, Value: "false"})
	return nil
}

// SetLogTypes overwrites the stored categories with f.
func (s *Service) SetLogTypes(ctx context.Context, guildID int64, f flagset.FlagSet) error {
	if err := s.check(guildID); err != nil {
		return err
	}
	types := flagset.Encode(f)
	if err := s.repo.UpsertLogTypes(ctx, guildID, types); err != nil {
		return fmt.Errorf("settings: set log types: %w", err)
	}
	s.notify(ctx, Change{GuildID: guildID, Field: FieldLogTypes, Value: types})
	return nil
}

// UpdateLogType sets one category and returns the resulting set.
//
// It is a read-modify-write without locking: concurrent updates to different categories
// of the same guild can lose one of the writes.
func (s *Service) UpdateLogType(ctx context.Context, guildID int64, c flagset.Category, enabled bool) (flagset.FlagSet, error) {
	if err := s.check(guildID); err != nil {
		return flagset.FlagSet{}, err
	}
	if !flagset.IsKnown(c) {
		return flagset.FlagSet{}, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, c)
	}
	cfg, err := s.Effective(ctx, guildID)
	if err != nil {
		return flagset.FlagSet{}, err
	}
	flags := cfg.LogTypes.Clone()
	flags.Set(c, enabled)
	if err := s.SetLogTypes(ctx, guildID, flags); err != nil {
		return flagset.FlagSet{}, err
	}
	return flags, nil
}

// ToggleLogType flips the gate value of one category and returns the new value.
// A category missing from the stored set counts as enabled, so its first toggle disables it.
func (s *Service) ToggleLogType(ctx context.Context, guildID int64, c flagset.Category) (bool, error) {
	cfg, err := s.Effective(ctx, guildID)
	if err != nil {
		return false, err
	}
	next := !flagset.IsEnabled(cfg.LogTypes, c)
	if _, err := s.UpdateLogType(ctx, guildID, c, next); err != nil {
		return false, err
	}
	return next, nil
}

// Language returns the stored language or the default. It never fails.
func (s *Service) Language(ctx context.Context, guildID int64) i18n.Language {
	cfg, ok, err := s.Get(ctx, guildID)
	if err != nil {
		s.log.Warn("language lookup failed", "guild_id", guildID, "err", err)
		return i18n.Default
	}
	if !ok {
		return i18n.Default
	}
	return cfg.Language
}

// SetLanguage stores lang. Unsupported codes are rejected.
func (s *Service) SetLanguage(ctx context.Context, guildID int64, lang i18n.Language) error {
	if err := s.check(guildID); err != nil {
		return err
	}
	if !lang.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, i18n.ErrUnsupported)
	}
	if err := s.repo.UpsertLanguage(ctx, guildID, string(lang)); err != nil {
		return fmt.Errorf("settings: set language: %w", err)
	}
	s.notify(ctx, Change{GuildID: guildID, Field: FieldLanguage, Value: string(lang)})
	return nil
}

// GuildsForChannel lists guilds whose log channel is channelID.
func (s *Service) GuildsForChannel(ctx context.Context, channelID int64) ([]int64, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}
	if channelID <= 0 {
		return nil, nil
	}
	ids, err := s.repo.GuildsForChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("settings: guilds for channel: %w", err)
	}
	return ids, nil
}

// ListEnabled returns every guild with logging on and a channel set.
func (s *Service) ListEnabled(ctx context.Context) ([]ServerConfig, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}
	recs, err := s.repo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings: list enabled: %w", err)
	}
	out := make([]ServerConfig, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.config())
	}
	return out, nil
}

func (s *Service) check(guildID int64) error {
	if s.repo == nil {
		return ErrNotConfigured
	}
	if guildID <= 0 {
		return ErrInvalidArgument
	}
	return nil
}

func (s *Service) notify(ctx context.Context, c Change) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogSettingChange(ctx, c); err != nil {
		s.log.Warn("settings audit failed", "guild_id", c.GuildID, "field", c.Field, "err", err)
	}
}
