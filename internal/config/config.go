package config

import (
	"fmt"
	"os"
)

// ServerConfig holds the configuration for the API server.
type ServerConfig struct {
	Addr         string
	DBPath       string
	DataDir      string
	AuthSecret   string
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
}

// ClientConfig holds the configuration for the CLI client.
type ClientConfig struct {
	APIBaseURL string
	AuthSecret string
	DataDir    string
}

// ServerFromEnv creates a server config from environment variables. At
// least one model provider key must be set; everything else has a
// default.
func ServerFromEnv() (*ServerConfig, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if geminiAPIKey == "" && groqAPIKey == "" {
		return nil, fmt.Errorf("neither GEMINI_API_KEY nor GROQ_API_KEY environment variable is set")
	}

	dataDir := envOr("OMENU_DATA_DIR", "./data")

	return &ServerConfig{
		Addr:         envOr("OMENU_ADDR", ":8080"),
		DBPath:       envOr("OMENU_DB_PATH", dataDir+"/omenu.db"),
		DataDir:      dataDir,
		AuthSecret:   os.Getenv("OMENU_AUTH_SECRET"),
		GeminiAPIKey: geminiAPIKey,
		GeminiModel:  os.Getenv("OMENU_GEMINI_MODEL"),
		GroqAPIKey:   groqAPIKey,
	}, nil
}

// ClientFromEnv creates a client config from environment variables.
func ClientFromEnv() (*ClientConfig, error) {
	return &ClientConfig{
		APIBaseURL: envOr("OMENU_API_BASE_URL", "http://localhost:8080"),
		AuthSecret: os.Getenv("OMENU_AUTH_SECRET"),
		DataDir:    envOr("OMENU_DATA_DIR", "./data"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
