package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the guildlog process needs.
// All values come from env; in local/dev a .env file is loaded first (see LoadDotEnv).
// No business logic should depend on raw environment variables.
type Config struct {
	App     AppConfig
	Discord DiscordConfig
	DB      DBConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Sweep   SweepConfig
	Log     LogConfig
}

type AppConfig struct {
	Env  string
	Port int
}

type DiscordConfig struct {
	Token string
	// CommandGuildID registers slash commands in one guild only (fast refresh in dev).
	// Zero registers them globally.
	CommandGuildID int64
	// SourceURL is linked from the /setting menu. Optional.
	SourceURL string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string

	MinConns       int
	MaxConns       int
	CommandTimeout time.Duration
}

type RedisConfig struct {
	Host string
	Port int

	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ChannelMissTTL is how long a vanished log channel is remembered.
	ChannelMissTTL time.Duration
}

type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type SweepConfig struct {
	Schedule string
}

type LogConfig struct {
	// File, when set, receives a copy of every diagnostic log line.
	File string
	// MaxSizeMB rotates File once it grows past this size; MaxBackups rotated files are kept.
	MaxSizeMB  int
	MaxBackups int
}

// LoadDotEnv loads .env.local and .env into the process environment when APP_ENV is
// local or dev (or unset). Existing variables win. Missing files are ignored.
func LoadDotEnv() error {
	switch strings.TrimSpace(os.Getenv("APP_ENV")) {
	case "", "local", "dev":
	default:
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	c := Config{}
	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))

	var parseErrs []error
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}

	c.Discord.Token = strings.TrimSpace(os.Getenv("DISCORD_TOKEN"))
	{
		id, err := optionalInt64("DISCORD_COMMAND_GUILD_ID")
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		c.Discord.CommandGuildID = id
	}

	c.Discord.SourceURL = strings.TrimSpace(os.Getenv("DISCORD_SOURCE_URL"))

	parseErrs = append(parseErrs, parseDB(&c)...)

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	{
		n, err := mustInt("REDIS_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Redis.Port = n
	}
	{
		d, err := optionalDuration("CHANNEL_MISS_TTL")
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		c.Redis.ChannelMissTTL = d
	}
	parseErrs = append(parseErrs, parseRedisPool(&c)...)

	parseErrs = append(parseErrs, parseAuth(&c)...)

	c.Sweep.Schedule = strings.TrimSpace(os.Getenv("SWEEP_SCHEDULE"))
	c.Log.File = strings.TrimSpace(os.Getenv("LOG_FILE"))
	{
		n, err := optionalInt("LOG_MAX_SIZE_MB")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Log.MaxSizeMB = n
	}
	{
		n, err := optionalInt("LOG_MAX_BACKUPS")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Log.MaxBackups = n
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadDB reads only APP_ENV and the DB_* variables.
func LoadDB() (Config, error) {
	c := Config{}
	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	if err := joinErrors(parseDB(&c)); err != nil {
		return Config{}, err
	}
	if err := c.ValidateDB(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadAuth reads only APP_ENV and the JWT_* variables.
func LoadAuth() (Config, error) {
	c := Config{}
	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	if err := joinErrors(parseAuth(&c)); err != nil {
		return Config{}, err
	}
	if err := joinErrors(c.validateAuth()); err != nil {
		return Config{}, err
	}
	return c, nil
}

func parseDB(c *Config) []error {
	var errs []error
	c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	{
		n, err := mustInt("DB_PORT")
		n, errs = appendParseErr(errs, n, err)
		c.DB.Port = n
	}
	c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.DB.Password = os.Getenv("DB_PASSWORD")
	c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))
	{
		n, err := optionalInt("DB_MIN_CONNS")
		n, errs = appendParseErr(errs, n, err)
		c.DB.MinConns = n
	}
	{
		n, err := optionalInt("DB_MAX_CONNS")
		n, errs = appendParseErr(errs, n, err)
		c.DB.MaxConns = n
	}
	{
		d, err := optionalDuration("DB_COMMAND_TIMEOUT")
		if err != nil {
			errs = append(errs, err)
		}
		c.DB.CommandTimeout = d
	}
	return errs
}

func parseRedisPool(c *Config) []error {
	var errs []error
	{
		n, err := optionalInt("REDIS_POOL_SIZE")
		n, errs = appendParseErr(errs, n, err)
		c.Redis.PoolSize = n
	}
	{
		n, err := optionalInt("REDIS_MIN_IDLE_CONNS")
		n, errs = appendParseErr(errs, n, err)
		c.Redis.MinIdleConns = n
	}
	{
		d, err := optionalDuration("REDIS_DIAL_TIMEOUT")
		if err != nil {
			errs = append(errs, err)
		}
		c.Redis.DialTimeout = d
	}
	{
		d, err := optionalDuration("REDIS_READ_TIMEOUT")
		if err != nil {
			errs = append(errs, err)
		}
		c.Redis.ReadTimeout = d
	}
	{
		d, err := optionalDuration("REDIS_WRITE_TIMEOUT")
		if err != nil {
			errs = append(errs, err)
		}
		c.Redis.WriteTimeout = d
	}
	return errs
}

func parseAuth(c *Config) []error {
	var errs []error
	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTIssuer = strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	c.Auth.JWTAudience = strings.TrimSpace(os.Getenv("JWT_AUDIENCE"))
	// Duration env vars are optional; defaults applied in validateAuth().
	{
		d, err := optionalDuration("JWT_ACCESS_TTL")
		if err != nil {
			errs = append(errs, err)
		}
		c.Auth.AccessTokenTTL = d
	}
	{
		d, err := optionalDuration("JWT_REFRESH_TTL")
		if err != nil {
			errs = append(errs, err)
		}
		c.Auth.RefreshTokenTTL = d
	}
	return errs
}

// Validate checks required values and fills defaults in place.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Discord.Token == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN is required"))
	}
	if c.Discord.SourceURL != "" && !strings.HasPrefix(c.Discord.SourceURL, "https://") {
		errs = append(errs, fmt.Errorf("DISCORD_SOURCE_URL must be an https URL, got %q", c.Discord.SourceURL))
	}
	if c.Discord.CommandGuildID < 0 {
		errs = append(errs, fmt.Errorf("DISCORD_COMMAND_GUILD_ID must be a snowflake, got %d", c.Discord.CommandGuildID))
	}

	errs = append(errs, c.validateDB()...)

	if c.Redis.Host == "" {
		errs = append(errs, errors.New("REDIS_HOST is required"))
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}
	if c.Redis.ChannelMissTTL <= 0 {
		c.Redis.ChannelMissTTL = 10 * time.Minute
	}
	if c.Redis.PoolSize <= 0 {
		c.Redis.PoolSize = 20
	}
	if c.Redis.MinIdleConns < 0 || c.Redis.MinIdleConns > c.Redis.PoolSize {
		errs = append(errs, fmt.Errorf("REDIS_MIN_IDLE_CONNS must be between 0 and REDIS_POOL_SIZE (%d), got %d", c.Redis.PoolSize, c.Redis.MinIdleConns))
	}
	if c.Redis.DialTimeout <= 0 {
		c.Redis.DialTimeout = 3 * time.Second
	}
	if c.Redis.ReadTimeout <= 0 {
		c.Redis.ReadTimeout = 2 * time.Second
	}
	if c.Redis.WriteTimeout <= 0 {
		c.Redis.WriteTimeout = 2 * time.Second
	}

	errs = append(errs, c.validateAuth()...)

	if c.Sweep.Schedule == "" {
		c.Sweep.Schedule = "@every 1h"
	}

	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 1024
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, fmt.Errorf("LOG_MAX_BACKUPS must not be negative, got %d", c.Log.MaxBackups))
	} else if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}

	return joinErrors(errs)
}

// ValidateDB checks only the database settings. Used by commands that need nothing else.
func (c *Config) ValidateDB() error {
	return joinErrors(c.validateDB())
}

func (c *Config) validateDB() []error {
	var errs []error
	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.DB.SSLMode == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_SSLMODE is required in production"))
		} else {
			// Local-friendly default; production must be explicit.
			c.DB.SSLMode = "disable"
		}
	}
	if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
		errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
	}

	if c.DB.MinConns <= 0 {
		c.DB.MinConns = 5
	}
	if c.DB.MaxConns <= 0 {
		c.DB.MaxConns = 20
	}
	if c.DB.MinConns > c.DB.MaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DB.MinConns, c.DB.MaxConns))
	}
	if c.DB.CommandTimeout <= 0 {
		c.DB.CommandTimeout = 60 * time.Second
	}
	return errs
}

func (c *Config) validateAuth() []error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() {
		if c.Auth.JWTIssuer == "" {
			errs = append(errs, errors.New("JWT_ISSUER is required in production"))
		}
		if c.Auth.JWTAudience == "" {
			errs = append(errs, errors.New("JWT_AUDIENCE is required in production"))
		}
	}
	if c.Auth.AccessTokenTTL <= 0 {
		// Default: short-lived access tokens.
		c.Auth.AccessTokenTTL = 15 * time.Minute
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		c.Auth.RefreshTokenTTL = 30 * 24 * time.Hour
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		errs = append(errs, errors.New("JWT_REFRESH_TTL must be greater than JWT_ACCESS_TTL"))
	}
	return errs
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalInt64(key string) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalDuration(key string) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, v)
	}
	return d, nil
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
