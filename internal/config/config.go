package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr   string
	DBPath       string
	SaveDebounce time.Duration
	SMSCapable   bool
	LogLevel     string
	LogFile      string
}

func Load() *Config {
	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "pantri.db"),
		SaveDebounce: time.Duration(getEnvInt("SAVE_DEBOUNCE_MS", 250)) * time.Millisecond,
		SMSCapable:   os.Getenv("SMS_CAPABLE") == "1",
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
