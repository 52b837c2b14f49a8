package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. All values
// are fixed at startup and treated as immutable afterwards.
type Config struct {
	ChannelSecret      string
	ChannelAccessToken string
	Port               int
	ModelPath          string
	LabelsPath         string
	OnnxRuntimePath    string
	WelcomeImageURL    string
}

// ErrMissingCredentials means the LINE channel credentials were not set. The
// process refuses to start without them, it never falls back to a baked-in
// value.
var ErrMissingCredentials = errors.New("LINE_CHANNEL_SECRET and LINE_CHANNEL_ACCESS_TOKEN must be set")

const defaultWelcomeImageURL = "https://storage.googleapis.com/pomelo-bot-assets/welcome.jpg"

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set everything in the environment.
	_ = godotenv.Load()

	cfg := &Config{
		ChannelSecret:      os.Getenv("LINE_CHANNEL_SECRET"),
		ChannelAccessToken: os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"),
		Port:               getEnvAsInt("PORT", 8080),
		ModelPath:          getEnv("MODEL_PATH", "best.onnx"),
		LabelsPath:         getEnv("LABELS_PATH", "labels.txt"),
		OnnxRuntimePath:    os.Getenv("ONNXRUNTIME_LIB"),
		WelcomeImageURL:    getEnv("WELCOME_IMAGE_URL", defaultWelcomeImageURL),
	}

	if cfg.ChannelSecret == "" || cfg.ChannelAccessToken == "" {
		return nil, ErrMissingCredentials
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
