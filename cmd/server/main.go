package main

import (
	"log"

	"virtualconf/config"
	"virtualconf/internal/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	application, err := app.New(cfg, config.NewLogger())
	if err != nil {
		log.Fatalf("app init: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("app run: %v", err)
	}
}
