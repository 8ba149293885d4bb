package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"thaidigest/internal/config"
	"thaidigest/internal/logger"
	"thaidigest/internal/storage"
	"thaidigest/internal/viewer"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	store, err := storage.NewS3Store(context.Background(), cfg.Bucket, cfg.BedrockRegion)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	srv := viewer.NewServer(store, cfg.Country, loc)

	port := os.Getenv("VIEWER_PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("viewer listening", "port", port, "bucket", cfg.Bucket)
	if err := http.ListenAndServe(":"+port, srv.Handler()); err != nil {
		log.Fatalf("viewer server: %v", err)
	}
}
