package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	GatewayURL     string
	GatewayTimeout time.Duration
	ServerPort     int
	PollInterval   time.Duration
	AllowedOrigins []string
	TournamentName string

	PublishInterval   time.Duration
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// PublishingEnabled - публикация в R2 включается, только если заданы все R2_* переменные.
func (c *Config) PublishingEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Ошибку не считаем фатальной: в проде .env обычно нет.
	_ = godotenv.Load()

	gatewayURL := strings.TrimSpace(os.Getenv("GATEWAY_URL"))
	if gatewayURL == "" {
		return nil, fmt.Errorf("GATEWAY_URL environment variable is not set")
	}
	if u, err := url.Parse(gatewayURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("GATEWAY_URL must be an absolute http(s) URL, got %q", gatewayURL)
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	pollInterval, err := durationEnv("POLL_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	gatewayTimeout, err := durationEnv("GATEWAY_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	publishInterval, err := durationEnv("PUBLISH_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	tournament := strings.TrimSpace(os.Getenv("TOURNAMENT_NAME"))
	if tournament == "" {
		tournament = "Tournament"
	}

	cfg := &Config{
		GatewayURL:        gatewayURL,
		GatewayTimeout:    gatewayTimeout,
		ServerPort:        port,
		PollInterval:      pollInterval,
		AllowedOrigins:    listEnv("ALLOWED_ORIGINS", []string{"*"}),
		TournamentName:    tournament,
		PublishInterval:   publishInterval,
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func listEnv(key string, def []string) []string {
	raw := os.Getenv(key)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
