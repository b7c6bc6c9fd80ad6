package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func localConfig() Config {
	return Config{
		App:     AppConfig{Env: "local", Port: 8080},
		Discord: DiscordConfig{Token: "bot-token"},
		DB:      DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "guildlog"},
		Redis:   RedisConfig{Host: "localhost", Port: 6379},
		Auth:    AuthConfig{JWTSecret: "secret"},
	}
}

func TestLoad_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_RequiresDiscordToken(t *testing.T) {
	c := localConfig()
	c.Discord.Token = ""
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error without DISCORD_TOKEN")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := localConfig()
	c.App.Env = "production"
	c.Auth.JWTIssuer = "guildlog"
	c.Auth.JWTAudience = "guildlog-api"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_LocalDefaults(t *testing.T) {
	c := localConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
	if c.DB.MinConns != 5 || c.DB.MaxConns != 20 {
		t.Fatalf("unexpected pool defaults min=%d max=%d", c.DB.MinConns, c.DB.MaxConns)
	}
	if c.DB.CommandTimeout != 60*time.Second {
		t.Fatalf("unexpected command timeout %s", c.DB.CommandTimeout)
	}
	if c.Redis.ChannelMissTTL != 10*time.Minute {
		t.Fatalf("unexpected miss ttl %s", c.Redis.ChannelMissTTL)
	}
	if c.Sweep.Schedule != "@every 1h" {
		t.Fatalf("unexpected sweep schedule %q", c.Sweep.Schedule)
	}
	if c.Auth.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("unexpected access ttl %s", c.Auth.AccessTokenTTL)
	}
	if c.Redis.PoolSize != 20 || c.Redis.DialTimeout != 3*time.Second || c.Redis.ReadTimeout != 2*time.Second {
		t.Fatalf("unexpected redis defaults %+v", c.Redis)
	}
	if c.Log.MaxSizeMB != 1024 || c.Log.MaxBackups != 5 {
		t.Fatalf("unexpected log rotation defaults size=%d backups=%d", c.Log.MaxSizeMB, c.Log.MaxBackups)
	}
}

func TestValidate_SourceURLMustBeHTTPS(t *testing.T) {
	c := localConfig()
	c.Discord.SourceURL = "http://example.org/guild-logger"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for non-https DISCORD_SOURCE_URL")
	}
	c.Discord.SourceURL = "https://example.org/guild-logger"
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidate_RedisIdleBounds(t *testing.T) {
	c := localConfig()
	c.Redis.PoolSize = 4
	c.Redis.MinIdleConns = 8
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error when idle conns exceed pool size")
	}
}

func TestValidate_NegativeLogBackups(t *testing.T) {
	c := localConfig()
	c.Log.MaxBackups = -1
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for negative LOG_MAX_BACKUPS")
	}
}

func TestValidate_PoolBounds(t *testing.T) {
	c := localConfig()
	c.DB.MinConns = 30
	c.DB.MaxConns = 10
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error when min conns exceed max conns")
	}
}

func TestValidateDB_IgnoresOtherSections(t *testing.T) {
	c := Config{
		App: AppConfig{Env: "local"},
		DB:  DBConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "guildlog"},
	}
	if err := c.ValidateDB(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("DISCORD_COMMAND_GUILD_ID", "123456789012345678")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_NAME", "n")
	t.Setenv("DB_COMMAND_TIMEOUT", "5s")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("SWEEP_SCHEDULE", "@every 5m")
	t.Setenv("REDIS_POOL_SIZE", "40")
	t.Setenv("REDIS_MIN_IDLE_CONNS", "4")
	t.Setenv("REDIS_READ_TIMEOUT", "750ms")
	t.Setenv("LOG_FILE", "/var/log/guildlog.log")
	t.Setenv("LOG_MAX_SIZE_MB", "64")
	t.Setenv("LOG_MAX_BACKUPS", "2")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Discord.CommandGuildID != 123456789012345678 {
		t.Fatalf("unexpected command guild %d", c.Discord.CommandGuildID)
	}
	if c.DB.CommandTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout %s", c.DB.CommandTimeout)
	}
	if c.Sweep.Schedule != "@every 5m" || c.HTTPAddr() != ":9090" || c.RedisAddr() != "cache:6379" {
		t.Fatalf("unexpected config %+v", c)
	}
	if c.Redis.PoolSize != 40 || c.Redis.MinIdleConns != 4 || c.Redis.ReadTimeout != 750*time.Millisecond {
		t.Fatalf("unexpected redis pool %+v", c.Redis)
	}
	if c.Log.File != "/var/log/guildlog.log" || c.Log.MaxSizeMB != 64 || c.Log.MaxBackups != 2 {
		t.Fatalf("unexpected log config %+v", c.Log)
	}
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("CHANNEL_MISS_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadDotEnv_ExistingVariablesWin(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GUILDLOG_TEST_A=fromfile\nGUILDLOG_TEST_B=fromfile\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("APP_ENV", "local")
	t.Setenv("GUILDLOG_TEST_A", "fromenv")
	// Registered so t.Setenv restores it after the test.
	t.Setenv("GUILDLOG_TEST_B", "")
	_ = os.Unsetenv("GUILDLOG_TEST_B")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := os.Getenv("GUILDLOG_TEST_A"); got != "fromenv" {
		t.Fatalf("expected env to win, got %q", got)
	}
	if got := os.Getenv("GUILDLOG_TEST_B"); got != "fromfile" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
