package main

import (
	"log"

	"github.com/bookhive/ops-backend/internal/config"
	"github.com/bookhive/ops-backend/internal/container"
	"github.com/bookhive/ops-backend/internal/logging"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(&cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	c, err := container.New(*cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Cleanup()

	log.Println("Starting queue worker...")
	if err := c.Worker.Start(); err != nil {
		log.Fatalf("Worker failed to start: %v", err)
	}

	select {}
}
