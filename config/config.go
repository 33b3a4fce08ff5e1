package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Admin     AdminConfig
	Recommend RecommendConfig
	Session   SessionConfig
	LogLevel  string
	LogFormat string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
	CORSOrigins  []string
}

type StoreConfig struct {
	// SeedPath points at a YAML catalog; empty means the embedded default
	SeedPath string
}

// AdminConfig is the fixed admin credential pair
type AdminConfig struct {
	Username string
	Password string
}

type RecommendConfig struct {
	APIKey  string
	Model   string
	Timeout int // seconds
	RPS     float64
	Burst   int
}

type SessionConfig struct {
	TTL time.Duration
}

// Load creates a new Config from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("PORT", 3001),
			ReadTimeout:  getEnvInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("IDLE_TIMEOUT", 60),
			CORSOrigins:  getEnvList("CORS_ORIGINS", []string{"*"}),
		},
		Store: StoreConfig{
			SeedPath: getEnv("STORE_SEED_PATH", ""),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "password"),
		},
		Recommend: RecommendConfig{
			APIKey:  getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
			Model:   getEnv("RECOMMEND_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvInt("RECOMMEND_TIMEOUT", 8),
			RPS:     getEnvFloat("RECOMMEND_RPS", 2),
			Burst:   getEnvInt("RECOMMEND_BURST", 4),
		},
		Session: SessionConfig{
			TTL: getEnvDuration("SESSION_TTL", 12*time.Hour),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList splits a comma separated value, dropping blanks
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
