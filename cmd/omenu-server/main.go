package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"omenu/internal/clipper"
	"omenu/internal/config"
	"omenu/internal/database"
	"omenu/internal/llm"
	"omenu/internal/metrics"
	"omenu/internal/planner"
	"omenu/internal/server"
	"omenu/internal/storage"
)

const version = "0.3.0"

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	cfg, err := config.ServerFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	textGen, err := newTextGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize text generator: %v", err)
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	handler := server.NewHandler(
		storage.NewStore(db.SQL),
		planner.NewService(textGen),
		clipper.NewClipper(textGen),
		metrics.NewStore(db.SQL),
		cfg.AuthSecret,
		cfg.DataDir,
		version,
	)

	router := gin.Default()
	handler.SetupRoutes(router)

	log.Printf("omenu server %s listening on %s", version, cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newTextGenerator picks the model provider: Gemini when configured,
// Groq otherwise.
func newTextGenerator(ctx context.Context, cfg *config.ServerConfig) (llm.TextGenerator, error) {
	if cfg.GeminiAPIKey != "" {
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	return llm.NewGroqClient(cfg.GroqAPIKey), nil
}
