package main

import (
	"log"

	"github.com/joho/godotenv"

	"datalens/adapters/hub"
	"datalens/internal/config"
	"datalens/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	client := hub.NewClient(cfg.Hub)

	server, err := ui.NewServer(cfg, client, client)
	if err != nil {
		log.Fatal("Failed to create UI server:", err)
	}

	log.Fatal(server.Start())
}
