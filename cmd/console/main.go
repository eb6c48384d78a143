package main

import (
	"log"

	"github.com/KD5VMF/GPS-Clock/internal/app"
	"github.com/KD5VMF/GPS-Clock/internal/config"
)

func main() {
	log.Println("starting gpsclock console (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal(config.DefaultPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunConsole(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
