package main

import (
	"log"

	// Embedded zone database so zone validation works on hosts without
	// /usr/share/zoneinfo.
	_ "time/tzdata"

	"github.com/KD5VMF/GPS-Clock/internal/app"
	"github.com/KD5VMF/GPS-Clock/internal/config"
)

func main() {
	log.Println("starting gpsclock web server (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal(config.DefaultPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunWeb(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
