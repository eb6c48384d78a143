package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.conf"))
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.TimeZone)
	assert.Equal(t, 9600, cfg.GPSBaudRate)
	assert.Equal(t, "digital", cfg.ClockMode)
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpsclock.conf")
	content := `# test config
GPS_SERIAL_PORT=/dev/ttyUSB0
GPS_BAUD_RATE=4800

TIME_ZONE=America/Chicago
CLOCK_MODE=analog
WEB_SERVER_PORT=9090
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", cfg.GPSSerialPort)
	assert.Equal(t, 4800, cfg.GPSBaudRate)
	assert.Equal(t, "America/Chicago", cfg.TimeZone)
	assert.Equal(t, "analog", cfg.ClockMode)
	assert.Equal(t, 9090, cfg.WebServerPort)

	// Keys the file does not mention keep their defaults.
	assert.Equal(t, "gpsclock/time", cfg.TopicTime)
	assert.Equal(t, 1000, cfg.TickInterval)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpsclock.conf")
	require.NoError(t, os.WriteFile(path, []byte("NO_SUCH_KEY=1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"GPS_BAUD_RATE=fast",
		"TICK_INTERVAL=soon",
		"CLOCK_MODE=round",
		"WEB_SERVER_PORT=http",
	}
	for _, line := range cases {
		path := filepath.Join(t.TempDir(), "gpsclock.conf")
		require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0o644))

		_, err := Load(path)
		assert.Error(t, err, "line %q", line)
	}
}

func TestValidateCatchesMissingRequired(t *testing.T) {
	cfg := Default()
	cfg.GPSSerialPort = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TickInterval = 0
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpsclock.conf")

	cfg := Default()
	cfg.TimeZone = "Europe/Paris"
	cfg.ClockMode = "analog"
	cfg.GPSSerialPort = "/dev/ttyACM0"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
