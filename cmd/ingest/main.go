package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"thaidigest/internal/app"
	"thaidigest/internal/config"
	"thaidigest/internal/fetch"
	"thaidigest/internal/logger"
	"thaidigest/internal/metrics"
	"thaidigest/internal/storage"
	"thaidigest/internal/summarize"
)

func main() {
	// Local runs only; in a scheduled environment there is no .env.
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	ctx := context.Background()

	store, err := storage.NewS3Store(ctx, cfg.Bucket, cfg.BedrockRegion)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	invoker, err := summarize.NewBedrockInvoker(ctx, cfg.BedrockRegion)
	if err != nil {
		log.Fatalf("bedrock: %v", err)
	}

	status, err := app.Run(ctx,
		cfg,
		fetch.New(cfg.FetchTimeout, cfg.UserAgent),
		summarize.NewClient(invoker, cfg.BedrockModelID),
		store,
	)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	out, err := json.Marshal(status)
	if err != nil {
		log.Fatalf("marshal status: %v", err)
	}
	os.Stdout.Write(append(out, '\n'))
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	log.Printf("Starting monitoring server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("Monitoring server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
