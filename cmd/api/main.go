package main

import (
	"context"
	"flag"
	"log"

	"github.com/Mateodiet/Project-Tool-Management/internal/app"
	"github.com/Mateodiet/Project-Tool-Management/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	application := app.New(cfg)
	if err := application.Init(context.Background()); err != nil {
		log.Fatalf("initializing app: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("running app: %v", err)
	}
}
