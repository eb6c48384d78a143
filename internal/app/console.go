package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/KD5VMF/GPS-Clock/internal/clock"
	"github.com/KD5VMF/GPS-Clock/internal/config"
)

// RunConsole prints each published time to stdout until interrupted.
func RunConsole() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicTime, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var t clock.LocalizedTime
		if err := json.Unmarshal(msg.Payload(), &t); err != nil {
			log.Printf("console: time unmarshal error: %v", err)
			return
		}

		fmt.Printf("[TIME]  %s  %s  %s\n", t.DateString(), t.TimeString(), t.Zone)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicTime)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
