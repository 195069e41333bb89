package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	BackendURL       string
	BackendTimeout   time.Duration
	SessionKey       []byte
	CSRFKey          []byte
	CookieSecure     bool
	ChatPollInterval time.Duration
	NotificationTTL  time.Duration
	LoginRateLimit   float64
	AllowedOrigins   []string
	LogLevel         string
	DataDir          string
	UploadsDir       string

	// Warnings collects fallbacks taken while loading; main logs them once
	// the logger exists.
	Warnings []string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, using environment and defaults")
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		BackendURL:     strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:3000"), "/"),
		CookieSecure:   getEnv("COOKIE_SECURE", "false") == "true",
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DataDir:        getEnv("DATA_DIR", "data"),
		UploadsDir:     getEnv("UPLOADS_DIR", "uploads"),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		cfg.warn("invalid PORT, falling back to 8080")
		cfg.Port = "8080"
	}

	cfg.BackendTimeout = cfg.duration("BACKEND_TIMEOUT", 10*time.Second)
	cfg.ChatPollInterval = cfg.duration("CHAT_POLL_INTERVAL", 30*time.Second)
	cfg.NotificationTTL = cfg.duration("NOTIFICATION_TTL", 5*time.Second)

	cfg.LoginRateLimit = 5
	if v, ok := os.LookupEnv("LOGIN_RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			cfg.warn("invalid LOGIN_RATE_LIMIT, falling back to 5")
		} else {
			cfg.LoginRateLimit = f
		}
	}

	cfg.SessionKey = cfg.key("SESSION_KEY")
	cfg.CSRFKey = cfg.key("CSRF_KEY")

	return cfg
}

func (c *Config) warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}

func (c *Config) duration(name string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		c.warn("invalid " + name + ", falling back to " + def.String())
		return def
	}
	return d
}

// key decodes a base64 secret of at least 32 bytes. A missing or short key
// is replaced by a random one, so sessions do not survive a restart.
func (c *Config) key(name string) []byte {
	v := os.Getenv(name)
	if v == "" {
		c.warn(name + " not set, generating a random key for development")
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(v)
	if err != nil || len(decoded) < 32 {
		c.warn(name + " is invalid or shorter than 32 bytes, generating a random key")
		return randomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("crypto/rand unavailable: %v", err)
	}
	return b
}
