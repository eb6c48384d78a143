package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/KD5VMF/GPS-Clock/internal/clock"
	"github.com/KD5VMF/GPS-Clock/internal/config"
)

// DisplayData holds the latest time for display
type DisplayData struct {
	mu       sync.RWMutex
	last     clock.LocalizedTime
	haveTime bool
}

// RunDisplay drives the SSD1306 OLED: it subscribes to the time topic and
// redraws the clock face, digital or analog per CLOCK_MODE, on each update
// interval. Until the first time arrives the splash screen stays up.
func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open(cfg.DisplayI2CBus)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display: OLED initialized")

	if err := showSplash(dev); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	// Data storage
	data := &DisplayData{}

	// Connect to MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicTime, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var t clock.LocalizedTime
		if err := json.Unmarshal(msg.Payload(), &t); err != nil {
			log.Printf("display: time unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.last = t
		data.haveTime = true
		data.mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicTime)

	// Display update loop
	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		data.mu.RLock()
		last, have := data.last, data.haveTime
		data.mu.RUnlock()

		if !have {
			continue // keep the splash until the first fix
		}

		img := renderFrame(cfg.ClockMode, last)
		if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
			log.Printf("display: draw error: %v", err)
		}
	}

	return nil
}

func showSplash(dev *ssd1306.Dev) error {
	img := blankImage()
	drawer := newDrawer(img)

	drawer.Dot = fixed.P(30, 26)
	drawer.DrawBytes([]byte("GPS Clock"))

	drawer.Dot = fixed.P(12, 43)
	drawer.DrawBytes([]byte("Waiting for fix"))

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
