package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	TaskStoreMemory   = "memory"
	TaskStorePostgres = "postgres"
	TaskStoreValkey   = "valkey"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Valkey    ValkeyConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Worker    WorkerConfig
	TaskStore string
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type ValkeyConfig struct {
	Address  string
	Password string
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	BaseURL         string
	Temperature     *float32
	MaxOutputTokens int32
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency   int
	QueueSize     int
	ResultTTL     time.Duration
	SweepInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Env:          getEnv("ENV", "development"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", "30s"),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", "120s"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ats_screener"),
		},
		Valkey: ValkeyConfig{
			Address:  getEnv("VALKEY_ADDRESS", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
		},
		Gemini: GeminiConfig{
			// GOOGLE_API_KEY is what the Google SDKs read by default.
			APIKey:          getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL:         getEnv("GEMINI_BASE_URL", ""),
			Temperature:     getEnvAsFloat32Ptr("GEMINI_TEMPERATURE"),
			MaxOutputTokens: int32(getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 4096)),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:   getEnvAsInt("WORKER_CONCURRENCY", 3),
			QueueSize:     getEnvAsInt("WORKER_QUEUE_SIZE", 100),
			ResultTTL:     getEnvAsDuration("RESULT_TTL", "1h"),
			SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", "1m"),
		},
		TaskStore: getEnv("TASK_STORE", TaskStoreMemory),
	}
}

// Validate reports settings the process cannot start with. A missing Gemini
// key is not one of them: screenings fail individually instead.
func (c *Config) Validate() error {
	switch c.TaskStore {
	case TaskStoreMemory, TaskStorePostgres, TaskStoreValkey:
	default:
		return fmt.Errorf("unknown TASK_STORE %q (want memory, postgres or valkey)", c.TaskStore)
	}

	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be at least 1, got %d", c.Worker.Concurrency)
	}
	if c.Worker.QueueSize < 1 {
		return fmt.Errorf("WORKER_QUEUE_SIZE must be at least 1, got %d", c.Worker.QueueSize)
	}
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize)
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32Ptr(key string) *float32 {
	valueStr := getEnv(key, "")
	value, err := strconv.ParseFloat(valueStr, 32)
	if err != nil {
		return nil
	}
	f := float32(value)
	return &f
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
