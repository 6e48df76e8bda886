package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска клиента.
type Config struct {
	Env             string
	APIBaseURL      string
	LogLevel        string
	HTTPTimeout     time.Duration
	PollInterval    time.Duration
	SessionFile     string
	DownloadDir     string
	MaxUploadSizeMB int64
	WSEnabled       bool
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	logLevel := getEnv("LOG_LEVEL", "")
	if logLevel == "" {
		logLevel = "info"
		if env == "development" {
			logLevel = "debug"
		}
	}

	cfg := &Config{
		Env:             env,
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8080"),
		LogLevel:        logLevel,
		HTTPTimeout:     mustParseDuration(getEnv("HTTP_TIMEOUT", "15s")),
		PollInterval:    mustParseDuration(getEnv("POLL_INTERVAL", "7s")),
		SessionFile:     getEnv("SESSION_FILE", defaultUserPath("session.json")),
		DownloadDir:     getEnv("DOWNLOAD_DIR", defaultUserPath("downloads")),
		MaxUploadSizeMB: mustParseInt64(getEnv("MAX_UPLOAD_MB", "10")),
		WSEnabled:       getEnv("WS_ENABLED", "false") == "true",
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// defaultUserPath строит путь внутри каталога ~/.backoffice.
func defaultUserPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".backoffice", name)
	}
	return filepath.Join(home, ".backoffice", name)
}

// mustParseDuration безопасно парсит строку в duration.
func mustParseDuration(v string) time.Duration {
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: не удалось распарсить длительность %q: %v", v, err)
	}
	return dur
}

// mustParseInt64 безопасно парсит строку в число.
func mustParseInt64(v string) int64 {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}
