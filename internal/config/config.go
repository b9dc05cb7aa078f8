package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fleethvac/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Tenancy    TenancyConfig
	Redis      RedisConfig
	MinIO      MinIOConfig
	MQTT       MQTTConfig
	Search     SearchConfig
	Completion CompletionConfig
	Jobs       JobsConfig
	Log        LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Env     string
	Port    int
	Version string
}

// DatabaseConfig holds relational store settings. URL wins over the discrete fields when set.
type DatabaseConfig struct {
	URL            string
	Host           string
	Port           int
	Name           string
	User           string
	Password       string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	IdleTimeout    time.Duration
	ConnectTimeout time.Duration
}

// AuthConfig holds identity provider settings
type AuthConfig struct {
	JWKSURL          string
	Issuer           string
	Audience         string
	DevSecret        string
	SuperAdminEmails []string
}

// TenancyConfig holds tenant resolution settings
type TenancyConfig struct {
	DefaultTenantID string
	MappingsJSON    string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// MinIOConfig holds object storage settings for tenant branding assets
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	URLExpiry time.Duration
}

// MQTTConfig holds sensor transport settings
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// SearchConfig holds the document search collaborator settings
type SearchConfig struct {
	Endpoint    string
	APIKey      string
	Index       string
	APIVersion  string
	TopK        int
	Timeout     time.Duration
	FilterField string // index field holding the tenant key; empty disables tenant filtering
}

// Enabled reports whether enough settings exist to call the search service
func (c SearchConfig) Enabled() bool {
	return c.Endpoint != "" && c.APIKey != "" && c.Index != ""
}

// CompletionConfig holds the language-model completion collaborator settings
type CompletionConfig struct {
	Endpoint     string
	APIKey       string
	Deployment   string
	APIVersion   string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
}

// Enabled reports whether enough settings exist to call the completion service
func (c CompletionConfig) Enabled() bool {
	return c.Endpoint != "" && c.APIKey != "" && c.Deployment != ""
}

// JobsConfig holds background job settings
type JobsConfig struct {
	Enabled             bool
	MaintenanceInterval time.Duration
	AlertSweepInterval  time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

const defaultSystemPrompt = "You are a maintenance assistant for train HVAC units. " +
	"Answer using the provided context. If the context does not contain the answer, say so."

// Load reads configuration from an optional .env file and environment variables.
// Keys map to env vars by upper-casing and replacing dots, e.g. db.host -> DB_HOST.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetInt("port"),
			Version: v.GetString("app.version"),
		},
		Database: DatabaseConfig{
			URL:            v.GetString("database.url"),
			Host:           v.GetString("db.host"),
			Port:           v.GetInt("db.port"),
			Name:           v.GetString("db.name"),
			User:           v.GetString("db.user"),
			Password:       v.GetString("db.password"),
			SSLMode:        v.GetString("db.sslmode"),
			MaxConns:       v.GetInt32("db.pool.max"),
			MinConns:       v.GetInt32("db.pool.min"),
			IdleTimeout:    v.GetDuration("db.idle.timeout"),
			ConnectTimeout: v.GetDuration("db.connect.timeout"),
		},
		Auth: AuthConfig{
			JWKSURL:          v.GetString("auth.jwks.url"),
			Issuer:           v.GetString("auth.issuer"),
			Audience:         v.GetString("auth.audience"),
			DevSecret:        v.GetString("jwt.secret"),
			SuperAdminEmails: splitList(v.GetString("super.admin.emails")),
		},
		Tenancy: TenancyConfig{
			DefaultTenantID: v.GetString("default.tenant.id"),
			MappingsJSON:    v.GetString("tenant.mappings"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			CacheTTL: v.GetDuration("redis.cache.ttl"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("minio.endpoint"),
			AccessKey: v.GetString("minio.access.key"),
			SecretKey: v.GetString("minio.secret.key"),
			UseSSL:    v.GetBool("minio.use.ssl"),
			Bucket:    v.GetString("minio.bucket"),
			Region:    v.GetString("minio.region"),
			URLExpiry: v.GetDuration("minio.url.expiry"),
		},
		MQTT: MQTTConfig{
			Broker:   v.GetString("mqtt.broker"),
			ClientID: v.GetString("mqtt.client.id"),
			Username: v.GetString("mqtt.username"),
			Password: v.GetString("mqtt.password"),
			Topic:    v.GetString("mqtt.topic"),
		},
		Search: SearchConfig{
			Endpoint:    v.GetString("search.endpoint"),
			APIKey:      v.GetString("search.key"),
			Index:       v.GetString("search.index"),
			APIVersion:  v.GetString("search.api.version"),
			TopK:        v.GetInt("search.top.k"),
			Timeout:     v.GetDuration("search.timeout"),
			FilterField: v.GetString("search.filter.field"),
		},
		Completion: CompletionConfig{
			Endpoint:     v.GetString("openai.endpoint"),
			APIKey:       v.GetString("openai.key"),
			Deployment:   v.GetString("openai.deployment"),
			APIVersion:   v.GetString("openai.api.version"),
			SystemPrompt: v.GetString("openai.system.prompt"),
			MaxTokens:    v.GetInt("openai.max.tokens"),
			Temperature:  v.GetFloat64("openai.temperature"),
			Timeout:      v.GetDuration("openai.timeout"),
		},
		Jobs: JobsConfig{
			Enabled:             v.GetBool("jobs.enabled"),
			MaintenanceInterval: v.GetDuration("jobs.maintenance.interval"),
			AlertSweepInterval:  v.GetDuration("jobs.alert.sweep.interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "fleethvac")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("port", 8080)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "fleethvac")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.pool.max", 20)
	v.SetDefault("db.pool.min", 2)
	v.SetDefault("db.idle.timeout", 30*time.Second)
	v.SetDefault("db.connect.timeout", 5*time.Second)

	v.SetDefault("super.admin.emails", "")
	v.SetDefault("default.tenant.id", models.DefaultTenantID)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.cache.ttl", 5*time.Minute)

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.access.key", "minioadmin")
	v.SetDefault("minio.secret.key", "minioadmin")
	v.SetDefault("minio.bucket", "tenant-branding")
	v.SetDefault("minio.region", "us-east-1")
	v.SetDefault("minio.url.expiry", time.Hour)

	v.SetDefault("mqtt.client.id", "fleethvac-api")
	v.SetDefault("mqtt.topic", "fleet/+/aggregates/+/readings")

	v.SetDefault("search.api.version", "2023-11-01")
	v.SetDefault("search.top.k", 3)
	v.SetDefault("search.timeout", 10*time.Second)

	v.SetDefault("openai.api.version", "2024-02-01")
	v.SetDefault("openai.system.prompt", defaultSystemPrompt)
	v.SetDefault("openai.max.tokens", 800)
	v.SetDefault("openai.temperature", 0.2)
	v.SetDefault("openai.timeout", 30*time.Second)

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.maintenance.interval", 90*24*time.Hour)
	v.SetDefault("jobs.alert.sweep.interval", 30*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func (c *Config) validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.App.Port)
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("db pool max must be positive, got %d", c.Database.MaxConns)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("db pool min (%d) exceeds max (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Tenancy.DefaultTenantID == "" {
		return fmt.Errorf("default tenant id is required")
	}
	if c.Search.TopK <= 0 {
		c.Search.TopK = 3
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns a postgres connection URL for the configured database
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ParseTenantMappings decodes the JSON-encoded mapping override list.
// An empty string yields a nil slice and no error.
func ParseTenantMappings(raw string) ([]models.TenantMapping, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var mappings []models.TenantMapping
	if err := json.Unmarshal([]byte(raw), &mappings); err != nil {
		return nil, fmt.Errorf("failed to parse tenant mappings: %w", err)
	}
	for i, m := range mappings {
		if m.ExternalID == "" || m.InternalID == "" {
			return nil, fmt.Errorf("tenant mapping %d: externalId and internalId are required", i)
		}
	}
	return mappings, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
