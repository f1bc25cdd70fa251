// Package config loads the engine's environment-driven configuration.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Global configuration instance
var global *Config

// Config is the global configuration, loaded once from .env / the process
// environment. Per-symbol trading parameters (lot, grid_size) live in the
// config store, not here.
type Config struct {
	BaseURL   string // REST base, e.g. https://open-api.bingx.com
	URLWS     string // WebSocket base, e.g. wss://open-api-ws.bingx.com/market
	APIKey    string
	SecretKey string

	DBType     string // sqlite or postgres
	DBPath     string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	TelegramToken string
	AdminID       int64

	LogLevel   string
	HealthAddr string

	// FeeReserveMode, when enabled, buys extra base quantity on top of the
	// target lot to cover the anticipated sell-side fee when the account's
	// existing base balance isn't already large enough to absorb it.
	FeeReserveMode bool

	BootstrapStaggerSeconds int
}

// Init initializes global configuration from the environment.
func Init() {
	cfg := &Config{
		BaseURL:                 "https://open-api.bingx.com",
		URLWS:                   "wss://open-api-ws.bingx.com/market",
		DBType:                  "sqlite",
		DBPath:                  "data/data.db",
		DBHost:                  "localhost",
		DBPort:                  5432,
		DBUser:                  "postgres",
		DBName:                  "bingxgrid",
		DBSSLMode:               "disable",
		LogLevel:                "info",
		HealthAddr:              ":8090",
		FeeReserveMode:          true,
		BootstrapStaggerSeconds: 2,
	}

	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("URL_WS"); v != "" {
		cfg.URLWS = v
	}
	cfg.APIKey = os.Getenv("API_KEY")
	cfg.SecretKey = os.Getenv("SECRET_KEY")

	if v := os.Getenv("DB_TYPE"); v != "" {
		cfg.DBType = strings.ToLower(v)
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.DBHost = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.DBPort = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.DBUser = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DBPassword = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DBName = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		cfg.DBSSLMode = v
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if v := os.Getenv("ADMIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.AdminID = id
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("HEALTH_ADDR"); v != "" {
		cfg.HealthAddr = v
	}
	if v := os.Getenv("FEE_RESERVE_MODE"); v != "" {
		cfg.FeeReserveMode = strings.ToLower(v) != "false"
	}
	if v := os.Getenv("BOOTSTRAP_STAGGER_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.BootstrapStaggerSeconds = n
		}
	}

	global = cfg
}

// Get returns the global configuration, initializing it on first use.
func Get() *Config {
	if global == nil {
		Init()
	}
	return global
}
