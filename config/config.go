package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds configuration values for the blog service.
// The session secret is sensitive and has no in-code default; it must come
// from config/config.json or the environment.
type AppConfig struct {
	AppPort       string
	SessionSecret string

	// Database: when DatabaseURI is set it is treated as a MySQL DSN,
	// otherwise the embedded SQLite file at SQLitePath is used.
	DatabaseURI string
	SQLitePath  string

	// Redis used as a best-effort read cache
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Gin framework configuration
	GinMode      string
	TemplateGlob string

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	// Seeded administrator account
	AdminUsername string
	AdminEmail    string
	AdminPassword string

	AllowedOrigins []string
}

// Load builds the configuration with the precedence
// config/config.json -> defaults -> environment variable overrides.
// A .env file is honored before env overrides are read.
func Load() AppConfig {
	_ = godotenv.Load()

	var cfg AppConfig
	if err := loadJSONConfig(filepath.Join("config", "config.json"), &cfg); err != nil {
		log.Fatalf("invalid config/config.json: %v", err)
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET must be set in config or environment")
	}
	return cfg
}

// loadJSONConfig reads the JSON file into cfg if present. A missing file is
// not an error; invalid JSON is.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var raw map[string]map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(section, key string) string {
		if m, ok := raw[section]; ok {
			if s, ok := m[key].(string); ok {
				return s
			}
		}
		return ""
	}
	getInt := func(section, key string) int {
		if m, ok := raw[section]; ok {
			if f, ok := m[key].(float64); ok {
				return int(f)
			}
		}
		return 0
	}
	getBool := func(section, key string) bool {
		if m, ok := raw[section]; ok {
			if b, ok := m[key].(bool); ok {
				return b
			}
		}
		return false
	}
	getStringSlice := func(section, key string) []string {
		if m, ok := raw[section]; ok {
			if arr, ok := m[key].([]any); ok {
				res := make([]string, 0, len(arr))
				for _, it := range arr {
					if s, ok := it.(string); ok {
						res = append(res, s)
					}
				}
				return res
			}
		}
		return nil
	}

	out.AppPort = getString("app", "AppPort")
	out.SessionSecret = getString("app", "SessionSecret")
	out.GinMode = getString("app", "GinMode")
	out.TemplateGlob = getString("app", "TemplateGlob")
	out.AllowedOrigins = getStringSlice("app", "AllowedOrigins")

	out.DatabaseURI = getString("database", "DatabaseURI")
	out.SQLitePath = getString("database", "SQLitePath")

	out.RedisHost = getString("redis", "RedisHost")
	out.RedisPort = getInt("redis", "RedisPort")
	out.RedisDB = getInt("redis", "RedisDB")
	out.RedisPassword = getString("redis", "RedisPassword")

	out.LogLevel = getString("log", "Level")
	out.LogPath = getString("log", "Path")
	out.LogMaxSizeMB = getInt("log", "MaxSizeMB")
	out.LogMaxBackups = getInt("log", "MaxBackups")
	out.LogMaxAgeDays = getInt("log", "MaxAgeDays")
	out.LogCompress = getBool("log", "Compress")

	out.AdminUsername = getString("admin", "Username")
	out.AdminEmail = getString("admin", "Email")
	out.AdminPassword = getString("admin", "Password")

	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.TemplateGlob == "" {
		c.TemplateGlob = "templates/*.html"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "database.db"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.AdminEmail == "" {
		c.AdminEmail = "admin@gmail.com"
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin123"
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			*dst = mustParseInt(key, v)
		}
	}

	setString("APP_PORT", &c.AppPort)
	setString("SESSION_SECRET", &c.SessionSecret)
	setString("GIN_MODE", &c.GinMode)
	setString("TEMPLATE_GLOB", &c.TemplateGlob)
	setString("DATABASE_URI", &c.DatabaseURI)
	setString("SQLITE_PATH", &c.SQLitePath)
	setString("REDIS_HOST", &c.RedisHost)
	setInt("REDIS_PORT", &c.RedisPort)
	setInt("REDIS_DB", &c.RedisDB)
	setString("REDIS_PASSWORD", &c.RedisPassword)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_PATH", &c.LogPath)
	setInt("LOG_MAX_SIZE_MB", &c.LogMaxSizeMB)
	setInt("LOG_MAX_BACKUPS", &c.LogMaxBackups)
	setInt("LOG_MAX_AGE_DAYS", &c.LogMaxAgeDays)
	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		c.LogCompress = v == "true"
	}
	setString("ADMIN_USERNAME", &c.AdminUsername)
	setString("ADMIN_EMAIL", &c.AdminEmail)
	setString("ADMIN_PASSWORD", &c.AdminPassword)
}

func mustParseInt(key, val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value for %s: %q", key, val)
	}
	return i
}
