package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
)

type Config struct {
	HTTPPort            string
	DatabaseURL         string
	JWTSecret           string
	AllowedOrigins      []string
	UploadDir           string
	RequestTimeout      time.Duration
	WebSocketWriteWait  time.Duration
	WebSocketPongWait   time.Duration
	WebSocketPingPeriod time.Duration
	WebSocketSendBuf    int
	SendTimeout         time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}

	if len(jwtSecret) < 32 {
		return Config{}, fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidJWTSecret, len(jwtSecret))
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:            getEnv("API_HTTP_PORT", "5000"),
		DatabaseURL:         databaseURL,
		JWTSecret:           jwtSecret,
		AllowedOrigins:      getListEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:4173"}),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads/resources"),
		RequestTimeout:      getDurationEnv("API_REQUEST_TIMEOUT", 5*time.Second),
		WebSocketWriteWait:  getDurationEnv("WS_WRITE_WAIT", 10*time.Second),
		WebSocketPongWait:   getDurationEnv("WS_PONG_WAIT", 60*time.Second),
		WebSocketPingPeriod: getDurationEnv("WS_PING_PERIOD", 54*time.Second),
		WebSocketSendBuf:    getIntEnv("WS_SEND_BUF_SIZE", 256),
		SendTimeout:         getDurationEnv("WS_SEND_TIMEOUT", 5*time.Second),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getListEnv(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
