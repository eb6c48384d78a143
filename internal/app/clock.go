package app

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/KD5VMF/GPS-Clock/internal/clock"
	"github.com/KD5VMF/GPS-Clock/internal/config"
	"github.com/KD5VMF/GPS-Clock/internal/gps"
	"github.com/KD5VMF/GPS-Clock/internal/zone"
)

// ClockOptions carries the command-line overrides for the clock process.
type ClockOptions struct {
	ConfigPath string
	Port       string
	Baud       int
	Zone       string
	Mock       bool // synthesize sentences instead of opening the port
}

// timePublisher forwards each localized time to the MQTT topic the display
// processes subscribe to. Publishes are retained so a display that starts
// late immediately shows the last known time.
type timePublisher struct {
	client mqtt.Client
	topic  string
}

func (p *timePublisher) Show(t clock.LocalizedTime) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, 0, true, payload)
	token.Wait()
	return token.Error()
}

// RunClock opens the GPS serial port, decodes NMEA time sentences once per
// second, and publishes the zone-adjusted time as JSON to MQTT.
func RunClock(opts ClockOptions) error {
	cfg := config.Get()
	if opts.Port != "" {
		cfg.GPSSerialPort = opts.Port
	}
	if opts.Baud > 0 {
		cfg.GPSBaudRate = opts.Baud
	}
	if opts.Zone != "" {
		cfg.TimeZone = opts.Zone
	}

	// ---- 1) Connect to MQTT broker ----
	mopts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDClock)

	client := mqtt.NewClient(mopts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("clock: connected to MQTT broker at %s", cfg.MQTTBroker)

	// ---- 2) Open GPS byte source ----
	var src gps.ByteSource
	if opts.Mock {
		src = gps.NewMockSource()
		log.Println("clock: using simulated GPS source")
	} else {
		var err error
		src, err = gps.OpenSerial(gps.SerialConfig{
			Port: cfg.GPSSerialPort,
			Baud: uint(cfg.GPSBaudRate),
		})
		if err != nil {
			return err
		}
		log.Printf("clock: GPS serial port opened on %s at %d baud", cfg.GPSSerialPort, cfg.GPSBaudRate)
	}
	defer src.Close()

	// ---- 3) Zone selection, updated over MQTT by the web UI ----
	sel := zone.NewSelection(cfg.TimeZone)

	zoneToken := client.Subscribe(cfg.TopicZone, 0, func(_ mqtt.Client, msg mqtt.Message) {
		name := string(msg.Payload())
		if err := zone.Validate(name); err != nil {
			log.Printf("clock: rejecting zone change: %v", err)
			return
		}
		if name == sel.Current() {
			return
		}
		sel.Set(name)
		cfg.TimeZone = name
		if err := cfg.Save(opts.ConfigPath); err != nil {
			log.Printf("clock: could not persist zone change: %v", err)
		}
		log.Printf("clock: time zone changed to %s", name)
	})
	zoneToken.Wait()
	if zoneToken.Error() != nil {
		return zoneToken.Error()
	}
	log.Printf("clock: subscribed to %s", cfg.TopicZone)

	// ---- 4) Run the one-second pipeline until interrupted ----
	sched := &clock.Scheduler{
		Reader:   gps.NewReader(src),
		Sync:     clock.NewSynchronizer(),
		Zone:     sel,
		Sink:     &timePublisher{client: client, topic: cfg.TopicTime},
		Interval: time.Duration(cfg.TickInterval) * time.Millisecond,
	}

	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("clock: shutting down")
		close(stop)
	}()

	return sched.Run(stop)
}
