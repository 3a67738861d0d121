package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel string
}

// Load reads server configuration from the environment, after loading an
// optional .env file. Every missing required variable is reported at once.
func Load() (Config, error) {
	_ = godotenv.Load()

	var missing []string

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ""),
		DatabaseURL:          requireEnv("DATABASE_URL", &missing),
		JWTSecret:            requireEnv("JWT_SECRET", &missing),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
		LogLevel:             getenv("LOG_LEVEL", "info"),
	}

	if cfg.HTTPAddr == "" {
		if port := getenv("PORT", ""); port != "" {
			cfg.HTTPAddr = ":" + port
		} else {
			cfg.HTTPAddr = ":8080"
		}
	}

	cfg.CORSAllowedOrigins = splitList(getenv("CORS_ALLOWED_ORIGINS", ""))

	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "168h"))
	if err != nil || ttl <= 0 {
		return cfg, fmt.Errorf("invalid TOKEN_TTL: %q", getenv("TOKEN_TTL", ""))
	}
	cfg.TokenTTL = ttl

	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}
	return cfg, nil
}

// ClientConfig configures the API client and the studyctl CLI.
type ClientConfig struct {
	APIURL          string
	TokenFile       string
	SuggestionsFile string
	HTTPTimeout     time.Duration
}

func LoadClient() (ClientConfig, error) {
	_ = godotenv.Load()

	cfg := ClientConfig{
		APIURL:          strings.TrimRight(getenv("STUDY_API_URL", "http://localhost:8080"), "/"),
		TokenFile:       getenv("STUDY_TOKEN_FILE", ""),
		SuggestionsFile: getenv("STUDY_SUGGESTIONS_FILE", ""),
	}

	if cfg.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.TokenFile = dir + string(os.PathSeparator) + "studynotes" + string(os.PathSeparator) + "token.json"
	}

	timeout, err := time.ParseDuration(getenv("STUDY_HTTP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return cfg, fmt.Errorf("invalid STUDY_HTTP_TIMEOUT: %q", getenv("STUDY_HTTP_TIMEOUT", ""))
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func requireEnv(key string, missing *[]string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		*missing = append(*missing, key)
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
