// Package config provides application configuration management with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (config.yaml in the working directory)
//  3. Default values
//
// Main configuration categories:
//   - AI: provider, chat model, embedder model
//   - Storage: PostgreSQL connection for the chunk store (see storage.go)
//   - Cache: Redis connection for the response cache and visit counters
//   - Mail: SES credentials, verified sender, site-owner address
//   - Analytics: excluded IPs, retention, daily-report threshold
//
// Security: sensitive values (passwords, AWS keys) are masked in MarshalJSON
// and String. Validation is fail-fast via Validate() (see validation.go).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidEmbedderModel indicates the embedder model is invalid.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is invalid.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")

	// ErrInvalidPostgresSSLMode indicates the PostgreSQL SSL mode is invalid.
	ErrInvalidPostgresSSLMode = errors.New("invalid PostgreSQL SSL mode")

	// ErrMissingSenderEmail indicates the verified sender address is not set.
	ErrMissingSenderEmail = errors.New("missing verified sender email")

	// ErrMissingOwnerEmail indicates the site-owner address is not set.
	ErrMissingOwnerEmail = errors.New("missing owner email")

	// ErrInvalidChunking indicates chunk size/overlap values are inconsistent.
	ErrInvalidChunking = errors.New("invalid chunking configuration")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGemini   = "gemini"
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

const (
	// DefaultEmbedderModel is the default Gemini embedder model.
	// gemini-embedding-001 supports truncation to 768 dimensions, matching
	// the pgvector schema in db/migrations.
	DefaultEmbedderModel = "gemini-embedding-001"

	// DefaultTopK is the number of chunks retrieved per chat query.
	DefaultTopK = 4

	// DefaultReportMinViews is the daily view count below which the
	// analytics report is skipped as likely test traffic.
	DefaultReportMinViews = 5
)

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
// When adding new sensitive fields, update MarshalJSON.
type Config struct {
	// AI provider and model configuration
	Provider      string `mapstructure:"provider" json:"provider"`           // "gemini" (default), "ollama", "openai"
	ModelName     string `mapstructure:"model_name" json:"model_name"`       // chat model (e.g. "gemini-2.5-flash")
	EmbedderModel string `mapstructure:"embedder_model" json:"embedder_model"`
	OllamaHost    string `mapstructure:"ollama_host" json:"ollama_host"`

	// Chunk store (PostgreSQL + pgvector; see storage.go)
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`

	// Redis (response cache + visit counters)
	RedisAddr     string `mapstructure:"redis_addr" json:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password" json:"redis_password"` // SENSITIVE: masked in MarshalJSON
	RedisDB       int    `mapstructure:"redis_db" json:"redis_db"`
	CacheTTL      int    `mapstructure:"cache_ttl" json:"cache_ttl"` // seconds; 0 = no expiry

	// Chunking and retrieval
	ChunkSize    int `mapstructure:"chunk_size" json:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap" json:"chunk_overlap"`
	TopK         int `mapstructure:"top_k" json:"top_k"`

	// Mail (AWS SES)
	AWSRegion          string `mapstructure:"aws_region" json:"aws_region"`
	AWSAccessKeyID     string `mapstructure:"aws_access_key_id" json:"aws_access_key_id"`         // SENSITIVE: masked in MarshalJSON
	AWSSecretAccessKey string `mapstructure:"aws_secret_access_key" json:"aws_secret_access_key"` // SENSITIVE: masked in MarshalJSON
	VerifiedSender     string `mapstructure:"verified_sender_email" json:"verified_sender_email"`
	OwnerEmail         string `mapstructure:"owner_email" json:"owner_email"`
	SendAutoreply      bool   `mapstructure:"send_autoreply" json:"send_autoreply"`

	// Analytics
	ExcludedIPs    []string `mapstructure:"excluded_ips" json:"excluded_ips"`
	RetentionDays  int      `mapstructure:"retention_days" json:"retention_days"` // 0 = keep day keys forever
	ReportMinViews int      `mapstructure:"report_min_views" json:"report_min_views"`

	// Server
	Port        int      `mapstructure:"port" json:"port"`
	SiteURL     string   `mapstructure:"site_url" json:"site_url"`       // canonical site origin, used for chunk URLs
	Environment string   `mapstructure:"environment" json:"environment"` // "production" or "development"
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`
	TrustProxy  bool     `mapstructure:"trust_proxy" json:"trust_proxy"`

	// SkipDBConnections disables external connections (vector store, redis)
	// for build-time execution of commands that must not touch live services.
	SkipDBConnections bool `mapstructure:"skip_db_connections" json:"skip_db_connections"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults + env apply.
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults", "config_name", "config.yaml")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL overrides individual postgres_* settings.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	// AI defaults
	viper.SetDefault("provider", ProviderGemini)
	viper.SetDefault("model_name", "gemini-2.5-flash")
	viper.SetDefault("embedder_model", DefaultEmbedderModel)
	viper.SetDefault("ollama_host", "http://localhost:11434")

	// PostgreSQL defaults (matching docker-compose.yml)
	viper.SetDefault("postgres_host", "localhost")
	viper.SetDefault("postgres_port", 5432)
	viper.SetDefault("postgres_user", "portfolio")
	viper.SetDefault("postgres_password", "portfolio_dev_password")
	viper.SetDefault("postgres_db_name", "portfolio")
	viper.SetDefault("postgres_ssl_mode", "disable")

	// Redis defaults
	viper.SetDefault("redis_addr", "localhost:6379")
	viper.SetDefault("redis_db", 0)
	viper.SetDefault("cache_ttl", 0)

	// Chunking and retrieval
	viper.SetDefault("chunk_size", 1000)
	viper.SetDefault("chunk_overlap", 200)
	viper.SetDefault("top_k", DefaultTopK)

	// Mail
	viper.SetDefault("aws_region", "us-east-1")
	viper.SetDefault("send_autoreply", true)

	// Analytics
	viper.SetDefault("retention_days", 90)
	viper.SetDefault("report_min_views", DefaultReportMinViews)

	// Server
	viper.SetDefault("port", 8080)
	viper.SetDefault("site_url", "https://www.olukareem.me")
	viper.SetDefault("environment", "development")
	viper.SetDefault("cors_origins", []string{"http://localhost:3000"})
	viper.SetDefault("trust_proxy", false)
	viper.SetDefault("skip_db_connections", false)
}

// bindEnvVariables binds environment variables explicitly.
// Secrets only arrive via environment, never the config file.
func bindEnvVariables() {
	// Hardcoded keys cannot fail to bind; a panic here would be a bug.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("provider", "PORTFOLIO_PROVIDER")
	mustBind("model_name", "PORTFOLIO_MODEL_NAME")
	mustBind("ollama_host", "PORTFOLIO_OLLAMA_HOST")

	mustBind("redis_addr", "REDIS_ADDR")
	mustBind("redis_password", "REDIS_PASSWORD")

	mustBind("aws_region", "AWS_REGION")
	mustBind("aws_access_key_id", "AWS_ACCESS_KEY_ID")
	mustBind("aws_secret_access_key", "AWS_SECRET_ACCESS_KEY")
	mustBind("verified_sender_email", "VERIFIED_SENDER_EMAIL")
	mustBind("owner_email", "OWNER_EMAIL")

	mustBind("excluded_ips", "EXCLUDED_IPS")
	mustBind("port", "PORT")
	mustBind("site_url", "PORTFOLIO_SITE_URL")
	mustBind("environment", "PORTFOLIO_ENV")
	mustBind("cors_origins", "PORTFOLIO_CORS_ORIGINS")
	mustBind("trust_proxy", "PORTFOLIO_TRUST_PROXY")
	mustBind("skip_db_connections", "SKIP_DB_CONNECTIONS")

	// NOTE: GEMINI_API_KEY / OPENAI_API_KEY are read directly by the genkit
	// provider plugins, not via viper.
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Secrets of 8 chars or fewer are fully masked; longer secrets show the
// first and last 2 characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive-field masking.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.PostgresPassword = maskSecret(a.PostgresPassword)
	a.RedisPassword = maskSecret(a.RedisPassword)
	a.AWSAccessKeyID = maskSecret(a.AWSAccessKeyID)
	a.AWSSecretAccessKey = maskSecret(a.AWSSecretAccessKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}

// FullModelName returns the provider-qualified model name for genkit.
// Examples: "googleai/gemini-2.5-flash", "ollama/llama3.3", "openai/gpt-4o-mini".
// If ModelName already contains a "/", it is returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	switch c.Provider {
	case ProviderOllama:
		return ProviderOllama + "/" + c.ModelName
	case ProviderOpenAI:
		return ProviderOpenAI + "/" + c.ModelName
	default:
		return ProviderGoogleAI + "/" + c.ModelName
	}
}

// IsProduction reports whether the server runs in production mode.
// Visit tracking treats all non-production traffic as test traffic.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
