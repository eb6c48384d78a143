package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DefaultPath is where the clock looks for its configuration unless told
// otherwise.
const DefaultPath = "gpsclock.conf"

// Config holds all application configuration values.
type Config struct {
	// GPS receiver
	GPSSerialPort string `validate:"required"`
	GPSBaudRate   int    `validate:"gt=0"`

	// Clock
	TimeZone     string `validate:"required"`
	TickInterval int    `validate:"gt=0"` // milliseconds
	ClockMode    string `validate:"oneof=digital analog"`

	// MQTT
	MQTTBroker          string `validate:"required"`
	MQTTClientIDClock   string `validate:"required"`
	MQTTClientIDDisplay string `validate:"required"`
	MQTTClientIDWeb     string `validate:"required"`
	MQTTClientIDConsole string `validate:"required"`
	TopicTime           string `validate:"required"`
	TopicZone           string `validate:"required"`

	// OLED display
	DisplayI2CBus         string // empty selects the first available bus
	DisplayUpdateInterval int    `validate:"gt=0"` // milliseconds

	// Web server
	WebServerPort int `validate:"gt=0"`
}

// Default returns the configuration used when no file exists yet, matching
// a u-blox style receiver on the Pi's primary UART.
func Default() *Config {
	return &Config{
		GPSSerialPort:         "/dev/serial0",
		GPSBaudRate:           9600,
		TimeZone:              "UTC",
		TickInterval:          1000,
		ClockMode:             "digital",
		MQTTBroker:            "tcp://localhost:1883",
		MQTTClientIDClock:     "gpsclock-producer",
		MQTTClientIDDisplay:   "gpsclock-display",
		MQTTClientIDWeb:       "gpsclock-web",
		MQTTClientIDConsole:   "gpsclock-console",
		TopicTime:             "gpsclock/time",
		TopicZone:             "gpsclock/zone",
		DisplayI2CBus:         "",
		DisplayUpdateInterval: 1000,
		WebServerPort:         8080,
	}
}

// Package-level unexported variables for the singleton: globalConfig is
// only reachable through InitGlobal and Get, configOnce makes InitGlobal
// idempotent, and configMu lets many readers share Get without blocking.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct. A missing
// file is not an error: the defaults apply, and the first Save creates it.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// GPS receiver
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate

	// Clock
	case "TIME_ZONE":
		c.TimeZone = value
	case "TICK_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TICK_INTERVAL %q: %w", value, err)
		}
		c.TickInterval = interval
	case "CLOCK_MODE":
		if value != "digital" && value != "analog" {
			return fmt.Errorf("CLOCK_MODE must be digital or analog, got %q", value)
		}
		c.ClockMode = value

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_CLOCK":
		c.MQTTClientIDClock = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "TOPIC_TIME":
		c.TopicTime = value
	case "TOPIC_ZONE":
		c.TopicZone = value

	// OLED display
	case "DISPLAY_I2C_BUS":
		c.DisplayI2CBus = value
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval

	// Web server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// Validate checks the struct tags with validator; required fields must be
// set and numeric fields must be in range.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Save writes the configuration back out in the same KEY=VALUE format that
// Load reads, so the selected time zone survives a restart.
func (c *Config) Save(configPath string) error {
	var b strings.Builder
	b.WriteString("# GPS-Clock configuration\n")
	fmt.Fprintf(&b, "GPS_SERIAL_PORT=%s\n", c.GPSSerialPort)
	fmt.Fprintf(&b, "GPS_BAUD_RATE=%d\n", c.GPSBaudRate)
	fmt.Fprintf(&b, "TIME_ZONE=%s\n", c.TimeZone)
	fmt.Fprintf(&b, "TICK_INTERVAL=%d\n", c.TickInterval)
	fmt.Fprintf(&b, "CLOCK_MODE=%s\n", c.ClockMode)
	fmt.Fprintf(&b, "MQTT_BROKER=%s\n", c.MQTTBroker)
	fmt.Fprintf(&b, "MQTT_CLIENT_ID_CLOCK=%s\n", c.MQTTClientIDClock)
	fmt.Fprintf(&b, "MQTT_CLIENT_ID_DISPLAY=%s\n", c.MQTTClientIDDisplay)
	fmt.Fprintf(&b, "MQTT_CLIENT_ID_WEB=%s\n", c.MQTTClientIDWeb)
	fmt.Fprintf(&b, "MQTT_CLIENT_ID_CONSOLE=%s\n", c.MQTTClientIDConsole)
	fmt.Fprintf(&b, "TOPIC_TIME=%s\n", c.TopicTime)
	fmt.Fprintf(&b, "TOPIC_ZONE=%s\n", c.TopicZone)
	fmt.Fprintf(&b, "DISPLAY_I2C_BUS=%s\n", c.DisplayI2CBus)
	fmt.Fprintf(&b, "DISPLAY_UPDATE_INTERVAL=%d\n", c.DisplayUpdateInterval)
	fmt.Fprintf(&b, "WEB_SERVER_PORT=%d\n", c.WebServerPort)

	if err := os.WriteFile(configPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses
// sync.Once so repeated calls are harmless.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be called
// first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
