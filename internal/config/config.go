package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the complete service configuration
type Config struct {
	Env      string         `toml:"env"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Storage  StorageConfig  `toml:"storage"`
	Logging  LoggingConfig  `toml:"logging"`
	Jobs     JobsConfig     `toml:"jobs"`
	Bot      BotConfig      `toml:"bot"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port            int    `toml:"port"`
	Timezone        string `toml:"timezone"` // timestamps in responses are rendered in this zone
	ShutdownSeconds int    `toml:"shutdown_seconds"`
	PDFFont         string `toml:"pdf_font"` // UTF-8 TrueType font for printable listings
}

// DatabaseConfig contains PostgreSQL settings. URL wins over the discrete fields.
type DatabaseConfig struct {
	URL         string `toml:"url"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Name        string `toml:"name"`
	User        string `toml:"user"`
	Password    string `toml:"password"`
	MinConns    int32  `toml:"min_conns"`
	MaxConns    int32  `toml:"max_conns"`
	AutoMigrate bool   `toml:"auto_migrate"`
}

// RedisConfig contains catalog cache settings
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// StorageConfig contains MinIO settings for export archives
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
}

// BotConfig contains chat-bot webhook settings
type BotConfig struct {
	WebhookSecret string `toml:"webhook_secret"` // empty disables the secret header check
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// JobsConfig contains background job schedules
type JobsConfig struct {
	ExportCron string `toml:"export_cron"`
	WarmupMins int    `toml:"catalog_warmup_minutes"`
}

// Load reads an optional .env file, an optional TOML file and finally
// environment variables, which take precedence.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}
	if filename != "" {
		if _, err := toml.DecodeFile(filename, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Env, "ENV")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Server.Timezone, "TIMEZONE")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASS")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Storage.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Storage.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Storage.Bucket, "MINIO_BUCKET")
	setString(&c.Jobs.ExportCron, "EXPORT_CRON")
	setString(&c.Server.PDFFont, "PDF_FONT")
	setString(&c.Bot.WebhookSecret, "BOT_WEBHOOK_SECRET")

	if err := setInt(&c.Server.Port, "PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		c.Storage.UseSSL = v == "true"
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		c.Database.AutoMigrate = v == "true"
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

// ApplyDefaults fills empty fields with default values
func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = "local"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Timezone == "" {
		c.Server.Timezone = "UTC"
	}
	if c.Server.ShutdownSeconds <= 0 {
		c.Server.ShutdownSeconds = 10
	}
	if c.Database.MinConns <= 0 {
		c.Database.MinConns = 1
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 10
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.TTLSeconds <= 0 {
		c.Redis.TTLSeconds = 600
	}
	if c.Storage.Endpoint == "" {
		c.Storage.Endpoint = "localhost:9000"
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "plastics-exports"
	}
	if c.Jobs.ExportCron == "" {
		c.Jobs.ExportCron = "0 3 * * *"
	}
	if c.Jobs.WarmupMins <= 0 {
		c.Jobs.WarmupMins = 10
	}
}

// Validate checks that the database can be addressed. All missing
// variables are reported at once.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		var missing []string
		for _, f := range []struct {
			name string
			set  bool
		}{
			{"DB_HOST", c.Database.Host != ""},
			{"DB_PORT", c.Database.Port != 0},
			{"DB_NAME", c.Database.Name != ""},
			{"DB_USER", c.Database.User != ""},
			{"DB_PASS", c.Database.Password != ""},
		} {
			if !f.set {
				missing = append(missing, f.name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required database environment variables: %s", strings.Join(missing, ", "))
		}
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Server.Timezone, err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Location returns the configured timezone; Validate guarantees it loads.
func (s ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CatalogTTL is the cache lifetime of the material catalog.
func (r RedisConfig) CatalogTTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}
