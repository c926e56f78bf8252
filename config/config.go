package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Sheets    SheetsConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	Environment    string
	RequestTimeout time.Duration
	MaxUploadBytes int64
}

// SheetsConfig locates the workbook that backs the record sink and the
// two catalog sheets.
type SheetsConfig struct {
	WorkbookPath  string
	MainSheet     string
	StoreSheet    string
	EmployeeSheet string
}

type StorageConfig struct {
	Region          string
	Bucket          string
	PathPrefix      string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CDN or custom domain; empty means direct bucket URL
}

type RedisConfig struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	CatalogTTL time.Duration
}

type SchedulerConfig struct {
	CatalogRefreshSpec string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration, consulting the secret provider before the
// environment for every sensitive key. Missing required values fail startup.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	secrets := NewFileSecretProvider(getEnv("SECRETS_DIR", "/etc/display-secrets"))

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			RequestTimeout: parseDuration(getEnv("REQUEST_TIMEOUT", "60s"), 60*time.Second),
			MaxUploadBytes: parseInt64(getEnv("MAX_UPLOAD_BYTES", "33554432"), 32<<20),
		},
		Sheets: SheetsConfig{
			WorkbookPath:  resolve(secrets, "WORKBOOK_PATH", "data/gramedia-display.xlsx"),
			MainSheet:     getEnv("MAIN_SHEET", "Sheet1"),
			StoreSheet:    getEnv("STORE_SHEET", "Store Sheet"),
			EmployeeSheet: getEnv("EMPLOYEE_SHEET", "Employee Sheet"),
		},
		Storage: StorageConfig{
			Region:          resolve(secrets, "AWS_REGION", "ap-southeast-1"),
			Bucket:          resolve(secrets, "AWS_S3_BUCKET", "gramedia-display"),
			PathPrefix:      getEnv("STORAGE_PATH_PREFIX", "gramedia-display"),
			AccessKeyID:     resolve(secrets, "AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: resolve(secrets, "AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Redis: RedisConfig{
			Enabled:    getEnv("REDIS_ADDR", "") != "",
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   resolve(secrets, "REDIS_PASSWORD", ""),
			DB:         parseInt(getEnv("REDIS_DB", "0"), 0),
			CatalogTTL: parseDuration(getEnv("CATALOG_CACHE_TTL", "5m"), 5*time.Minute),
		},
		Scheduler: SchedulerConfig{
			CatalogRefreshSpec: getEnv("CATALOG_REFRESH_SPEC", "@every 10m"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// validate enforces the hard startup requirements: without a bucket, a
// workbook and the sheet names nothing in the pipeline can run.
func (c *Config) validate() error {
	var missing []string
	if c.Storage.Bucket == "" {
		missing = append(missing, "AWS_S3_BUCKET")
	}
	if c.Storage.Region == "" {
		missing = append(missing, "AWS_REGION")
	}
	if c.Sheets.WorkbookPath == "" {
		missing = append(missing, "WORKBOOK_PATH")
	}
	if c.Sheets.MainSheet == "" || c.Sheets.StoreSheet == "" || c.Sheets.EmployeeSheet == "" {
		missing = append(missing, "sheet names")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// resolve consults the secret provider first and falls back to the
// environment, then the default.
func resolve(secrets SecretProvider, key, defaultValue string) string {
	if value, ok := secrets.GetSecret(key); ok {
		return value
	}
	return getEnv(key, defaultValue)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseInt64(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
