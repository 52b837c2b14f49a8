package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"pomelo-bot/config"
	"pomelo-bot/internal/api"
	"pomelo-bot/internal/container"
	"pomelo-bot/internal/domain/port"
	"pomelo-bot/internal/infrastructure/line"
	"pomelo-bot/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	classes, err := vision.LoadClassTable(cfg.LabelsPath)
	if err != nil {
		log.Fatalf("Failed to load class table: %v", err)
	}

	// Model load failures do not stop the process: the bot keeps serving the
	// health endpoint and reports the model as unavailable.
	var detector port.DiseaseDetector
	if cfg.OnnxRuntimePath != "" {
		ort.SetSharedLibraryPath(cfg.OnnxRuntimePath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		log.Printf("onnxruntime unavailable, running degraded: %v", err)
	} else {
		defer ort.DestroyEnvironment()

		d, err := vision.NewONNXDetector(cfg.ModelPath, len(classes))
		if err != nil {
			log.Printf("model load failed, running degraded: %v", err)
		} else {
			defer d.Destroy()
			detector = d
			log.Printf("model loaded: %s (%d classes)", cfg.ModelPath, len(classes))
		}
	}

	messenger, err := line.NewClient(cfg.ChannelAccessToken)
	if err != nil {
		log.Fatalf("Failed to create LINE client: %v", err)
	}

	c := container.New(detector, messenger, messenger, classes, cfg.WelcomeImageURL)
	server := api.NewServer(c, cfg.ChannelSecret)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Printf("server starting on %s", addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
