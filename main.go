package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"paysynth/cmd"
	"paysynth/config"
)

func main() {
	// Optional; environment variables stay authoritative when no .env exists.
	godotenv.Load()

	if len(os.Args) > 1 && os.Args[1] == "load" {
		cfg, err := config.ParseLoad(os.Args[2:])
		if err != nil {
			log.Fatalf("Invalid load configuration: %v", err)
		}
		if err := cmd.Load(context.Background(), cfg); err != nil {
			log.Fatalf("Load error: %v", err)
		}
		return
	}

	cfg, err := config.ParseGenerate(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cmd.Run(cfg); err != nil {
		log.Fatalf("Generation error: %v", err)
	}
}
