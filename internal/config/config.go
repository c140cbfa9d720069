package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Summarizer SummarizerConfig
	Cache      CacheConfig
	Queue      QueueConfig
	Retention  RetentionConfig
}

// QueueConfig holds analysis queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CacheConfig bounds the in-process brief cache.
type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// RetentionConfig controls the scheduled cleanup of old analyses.
type RetentionConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Schedule string        `mapstructure:"schedule"`
	MaxAge   time.Duration `mapstructure:"max_age"`
}

// SummarizerProviderConfig holds settings for a single summarization provider.
type SummarizerProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// SummarizerConfig holds summarization settings with multi-provider support.
type SummarizerConfig struct {
	// Legacy flat fields
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   SummarizerProviderConfig `mapstructure:"primary"`
	Secondary SummarizerProviderConfig `mapstructure:"secondary"`
	Tertiary  SummarizerProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to the flat fields.
func (s *SummarizerConfig) PrimaryConfig() *SummarizerProviderConfig {
	if s.Primary.Provider != "" {
		return &s.Primary
	}
	return &SummarizerProviderConfig{
		Provider:     s.Provider,
		APIKey:       s.APIKey,
		DefaultModel: s.DefaultModel,
		MaxRetries:   s.MaxRetries,
		TimeoutSecs:  s.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (s *SummarizerConfig) SecondaryConfig() *SummarizerProviderConfig {
	if s.Secondary.Provider != "" {
		return &s.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (s *SummarizerConfig) TertiaryConfig() *SummarizerProviderConfig {
	if s.Tertiary.Provider != "" {
		return &s.Tertiary
	}
	return nil
}

// Chain returns the configured providers in fallback order.
func (s *SummarizerConfig) Chain() []*SummarizerProviderConfig {
	chain := []*SummarizerProviderConfig{s.PrimaryConfig()}
	if sec := s.SecondaryConfig(); sec != nil {
		chain = append(chain, sec)
	}
	if ter := s.TertiaryConfig(); ter != nil {
		chain = append(chain, ter)
	}
	return chain
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for uploaded judgments.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the JUDGEBRIEF_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("JUDGEBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "judgebrief")
	v.SetDefault("db.password", "judgebrief_secret")
	v.SetDefault("db.name", "judgebrief_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "judgebrief-judgments")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Summarizer defaults (legacy flat). "lead" is the offline extractive provider.
	v.SetDefault("summarizer.provider", "lead")
	v.SetDefault("summarizer.api_key", "")
	v.SetDefault("summarizer.default_model", "")
	v.SetDefault("summarizer.max_retries", 2)
	v.SetDefault("summarizer.timeout_secs", 60)

	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("summarizer."+tier+".provider", "")
		v.SetDefault("summarizer."+tier+".api_key", "")
		v.SetDefault("summarizer."+tier+".default_model", "")
		v.SetDefault("summarizer."+tier+".max_retries", 2)
		v.SetDefault("summarizer."+tier+".timeout_secs", 60)
	}

	// Cache defaults
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", "1h")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 4)

	// Retention defaults
	v.SetDefault("retention.enabled", true)
	v.SetDefault("retention.schedule", "0 2 * * *")
	v.SetDefault("retention.max_age", "720h")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "JUDGEBRIEF_SERVER_PORT",
		"server.read_timeout":      "JUDGEBRIEF_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "JUDGEBRIEF_SERVER_WRITE_TIMEOUT",
		"server.environment":       "JUDGEBRIEF_SERVER_ENVIRONMENT",
		"db.host":                  "JUDGEBRIEF_DB_HOST",
		"db.port":                  "JUDGEBRIEF_DB_PORT",
		"db.user":                  "JUDGEBRIEF_DB_USER",
		"db.password":              "JUDGEBRIEF_DB_PASSWORD",
		"db.name":                  "JUDGEBRIEF_DB_NAME",
		"db.sslmode":               "JUDGEBRIEF_DB_SSLMODE",
		"db.max_open":              "JUDGEBRIEF_DB_MAX_OPEN",
		"db.max_idle":              "JUDGEBRIEF_DB_MAX_IDLE",
		"s3.region":                "JUDGEBRIEF_S3_REGION",
		"s3.bucket":                "JUDGEBRIEF_S3_BUCKET",
		"s3.endpoint":              "JUDGEBRIEF_S3_ENDPOINT",
		"s3.access_key":            "JUDGEBRIEF_S3_ACCESS_KEY",
		"s3.secret_key":            "JUDGEBRIEF_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "JUDGEBRIEF_S3_MAX_FILE_SIZE_MB",
		"log.level":                "JUDGEBRIEF_LOG_LEVEL",
		"log.format":               "JUDGEBRIEF_LOG_FORMAT",
		"cors.allowed_origins":     "JUDGEBRIEF_CORS_ALLOWED_ORIGINS",
		"summarizer.provider":      "JUDGEBRIEF_SUMMARIZER_PROVIDER",
		"summarizer.api_key":       "JUDGEBRIEF_SUMMARIZER_API_KEY",
		"summarizer.default_model": "JUDGEBRIEF_SUMMARIZER_DEFAULT_MODEL",
		"summarizer.max_retries":   "JUDGEBRIEF_SUMMARIZER_MAX_RETRIES",
		"summarizer.timeout_secs":  "JUDGEBRIEF_SUMMARIZER_TIMEOUT_SECS",
		"cache.size":               "JUDGEBRIEF_CACHE_SIZE",
		"cache.ttl":                "JUDGEBRIEF_CACHE_TTL",
		"queue.poll_interval_secs": "JUDGEBRIEF_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":        "JUDGEBRIEF_QUEUE_MAX_RETRIES",
		"queue.concurrency":        "JUDGEBRIEF_QUEUE_CONCURRENCY",
		"retention.enabled":        "JUDGEBRIEF_RETENTION_ENABLED",
		"retention.schedule":       "JUDGEBRIEF_RETENTION_SCHEDULE",
		"retention.max_age":        "JUDGEBRIEF_RETENTION_MAX_AGE",
	}
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		for _, field := range []string{"provider", "api_key", "default_model", "max_retries", "timeout_secs"} {
			key := "summarizer." + tier + "." + field
			envBindings[key] = "JUDGEBRIEF_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosted platforms set PORT. Use it unless JUDGEBRIEF_SERVER_PORT is explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("JUDGEBRIEF_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	tierConfig := func(tier string) SummarizerProviderConfig {
		prefix := "summarizer." + tier + "."
		return SummarizerProviderConfig{
			Provider:     v.GetString(prefix + "provider"),
			APIKey:       v.GetString(prefix + "api_key"),
			DefaultModel: v.GetString(prefix + "default_model"),
			MaxRetries:   v.GetInt(prefix + "max_retries"),
			TimeoutSecs:  v.GetInt(prefix + "timeout_secs"),
		}
	}
	cfg.Summarizer = SummarizerConfig{
		Provider:     v.GetString("summarizer.provider"),
		APIKey:       v.GetString("summarizer.api_key"),
		DefaultModel: v.GetString("summarizer.default_model"),
		MaxRetries:   v.GetInt("summarizer.max_retries"),
		TimeoutSecs:  v.GetInt("summarizer.timeout_secs"),
		Primary:      tierConfig("primary"),
		Secondary:    tierConfig("secondary"),
		Tertiary:     tierConfig("tertiary"),
	}

	cfg.Cache = CacheConfig{
		Size: v.GetInt("cache.size"),
		TTL:  v.GetDuration("cache.ttl"),
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Retention = RetentionConfig{
		Enabled:  v.GetBool("retention.enabled"),
		Schedule: v.GetString("retention.schedule"),
		MaxAge:   v.GetDuration("retention.max_age"),
	}

	return cfg, nil
}
