package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv              string
	Addr                string
	DbDriver            string
	DbDsn               string
	AllowedOriginsRaw   string
	PushIntervalSeconds int
	HolidayRulesPath    string
	LogLevel            string
	LogFile             string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:              getEnv("APP_ENV", "local"),
		Addr:                getEnv("APP_ADDR", ":8080"),
		DbDriver:            getEnv("DB_DRIVER", "mysql"),
		DbDsn:               os.Getenv("DB_DSN"),
		AllowedOriginsRaw:   getEnv("ALLOWED_ORIGINS", ""),
		PushIntervalSeconds: getEnvInt("PUSH_INTERVAL_SECONDS", 60),
		HolidayRulesPath:    os.Getenv("HOLIDAY_RULES"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFile:             os.Getenv("LOG_FILE"),
	}

	missing := []string{}
	if cfg.DbDsn == "" {
		missing = append(missing, "DB_DSN")
	}
	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	if cfg.PushIntervalSeconds < 1 {
		return cfg, errors.New("PUSH_INTERVAL_SECONDS must be at least 1")
	}

	return cfg, nil
}

func (c Config) PushInterval() time.Duration {
	return time.Duration(c.PushIntervalSeconds) * time.Second
}

func (c Config) AllowedOrigins() []string {
	origins := []string{}
	for _, origin := range strings.Split(c.AllowedOriginsRaw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
