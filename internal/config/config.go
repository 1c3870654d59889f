package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"

	SessionSQLite = "sqlite"
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	Port             string
	LogLevel         string
	HTTPWriteTimeout time.Duration

	// Upload store
	StorageBackend string
	UploadDir      string
	MaxFileSize    int64

	// S3
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Current-document store
	SessionBackend string
	DatabasePath   string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionTTL     time.Duration

	// OpenAI
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	MaxPromptChars int
	LLMTimeout     time.Duration
}

var defaults = map[string]any{
	"port":                 "8080",
	"log_level":            "info",
	"http_write_timeout":   "5m",
	"storage_backend":      StorageLocal,
	"upload_dir":           "uploads",
	"max_file_size":        10 << 20,
	"s3_endpoint":          "localhost:9000",
	"s3_access_key_id":     "minioadmin",
	"s3_secret_access_key": "minioadmin",
	"s3_bucket_name":       "documents",
	"s3_use_ssl":           false,
	"session_backend":      SessionSQLite,
	"database_path":        ":memory:",
	"redis_addr":           "localhost:6379",
	"redis_password":       "",
	"redis_db":             0,
	"session_ttl":          "24h",
	"openai_api_key":       "",
	"openai_base_url":      "",
	"openai_model":         "gpt-4o",
	"max_prompt_chars":     100000,
	"llm_timeout":          "0s",
}

// Load reads configuration from (in increasing precedence) built-in
// defaults, an optional YAML file at path, a .env file in the working
// directory and the process environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:              v.GetString("port"),
		LogLevel:          v.GetString("log_level"),
		HTTPWriteTimeout:  v.GetDuration("http_write_timeout"),
		StorageBackend:    strings.ToLower(v.GetString("storage_backend")),
		UploadDir:         v.GetString("upload_dir"),
		MaxFileSize:       v.GetInt64("max_file_size"),
		S3Endpoint:        v.GetString("s3_endpoint"),
		S3AccessKeyID:     v.GetString("s3_access_key_id"),
		S3SecretAccessKey: v.GetString("s3_secret_access_key"),
		S3BucketName:      v.GetString("s3_bucket_name"),
		S3UseSSL:          v.GetBool("s3_use_ssl"),
		SessionBackend:    strings.ToLower(v.GetString("session_backend")),
		DatabasePath:      v.GetString("database_path"),
		RedisAddr:         v.GetString("redis_addr"),
		RedisPassword:     v.GetString("redis_password"),
		RedisDB:           v.GetInt("redis_db"),
		SessionTTL:        v.GetDuration("session_ttl"),
		OpenAIAPIKey:      strings.TrimSpace(v.GetString("openai_api_key")),
		OpenAIBaseURL:     strings.TrimSpace(v.GetString("openai_base_url")),
		OpenAIModel:       strings.TrimSpace(v.GetString("openai_model")),
		MaxPromptChars:    v.GetInt("max_prompt_chars"),
		LLMTimeout:        v.GetDuration("llm_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	switch c.StorageBackend {
	case StorageLocal, StorageS3:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.SessionBackend {
	case SessionSQLite, SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.MaxPromptChars < 0 {
		return fmt.Errorf("MAX_PROMPT_CHARS must not be negative")
	}
	return nil
}
