package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "LOG_LEVEL", "HTTP_WRITE_TIMEOUT",
	"STORAGE_BACKEND", "UPLOAD_DIR", "MAX_FILE_SIZE",
	"SESSION_BACKEND", "DATABASE_PATH", "SESSION_TTL",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
	"MAX_PROMPT_CHARS", "LLM_TIMEOUT",
}

// clearEnv blanks every key Load reads; empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.HTTPWriteTimeout)
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(10<<20), cfg.MaxFileSize)
	assert.Equal(t, SessionSQLite, cfg.SessionBackend)
	assert.Equal(t, ":memory:", cfg.DatabasePath)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, 100000, cfg.MaxPromptChars)
	assert.Zero(t, cfg.LLMTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "  sk-test  ")
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_BACKEND", "Memory")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, SessionMemory, cfg.SessionBackend)
	assert.Equal(t, int64(1024), cfg.MaxFileSize)
	assert.Equal(t, 90*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "docvalidator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
storage_backend: s3
s3_bucket_name: validated
session_backend: redis
redis_addr: cache:6379
openai_api_key: sk-from-file
max_prompt_chars: 500
`), 0o644))

	// Environment beats the file.
	t.Setenv("PORT", "7001")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Port)
	assert.Equal(t, StorageS3, cfg.StorageBackend)
	assert.Equal(t, "validated", cfg.S3BucketName)
	assert.Equal(t, SessionRedis, cfg.SessionBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, "sk-from-file", cfg.OpenAIAPIKey)
	assert.Equal(t, 500, cfg.MaxPromptChars)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StorageBackend: StorageLocal,
			SessionBackend: SessionSQLite,
			MaxFileSize:    1,
			OpenAIAPIKey:   "sk",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no key", mutate: func(c *Config) { c.OpenAIAPIKey = "" }, wantErr: "OPENAI_API_KEY"},
		{name: "bad storage", mutate: func(c *Config) { c.StorageBackend = "ftp" }, wantErr: "STORAGE_BACKEND"},
		{name: "bad session", mutate: func(c *Config) { c.SessionBackend = "etcd" }, wantErr: "SESSION_BACKEND"},
		{name: "zero file size", mutate: func(c *Config) { c.MaxFileSize = 0 }, wantErr: "MAX_FILE_SIZE"},
		{name: "negative prompt bound", mutate: func(c *Config) { c.MaxPromptChars = -1 }, wantErr: "MAX_PROMPT_CHARS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
