package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL", "GEMINI_TEMPERATURE",
		"TASK_STORE", "RESULT_TTL", "WORKER_CONCURRENCY", "MAX_FILE_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Nil(t, cfg.Gemini.Temperature)
	assert.Equal(t, int32(4096), cfg.Gemini.MaxOutputTokens)
	assert.Equal(t, TaskStoreMemory, cfg.TaskStore)
	assert.Equal(t, time.Hour, cfg.Worker.ResultTTL)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("GEMINI_TEMPERATURE", "0.2")
	t.Setenv("TASK_STORE", "valkey")
	t.Setenv("RESULT_TTL", "15m")
	t.Setenv("WORKER_CONCURRENCY", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "google-key", cfg.Gemini.APIKey)
	require.NotNil(t, cfg.Gemini.Temperature)
	assert.InDelta(t, 0.2, *cfg.Gemini.Temperature, 0.0001)
	assert.Equal(t, TaskStoreValkey, cfg.TaskStore)
	assert.Equal(t, 15*time.Minute, cfg.Worker.ResultTTL)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
}

func TestGeminiKeyTakesPrecedence(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	assert.Equal(t, "gemini-key", Load().Gemini.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unknown store", func(c *Config) { c.TaskStore = "mongo" }, "unknown TASK_STORE"},
		{"zero workers", func(c *Config) { c.Worker.Concurrency = 0 }, "WORKER_CONCURRENCY"},
		{"zero queue", func(c *Config) { c.Worker.QueueSize = 0 }, "WORKER_QUEUE_SIZE"},
		{"zero file size", func(c *Config) { c.Storage.MaxFileSize = 0 }, "MAX_FILE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				TaskStore: TaskStoreMemory,
				Storage:   StorageConfig{MaxFileSize: 1024},
				Worker:    WorkerConfig{Concurrency: 1, QueueSize: 1},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "ats"}}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=ats sslmode=disable", cfg.GetDatabaseDSN())
}
