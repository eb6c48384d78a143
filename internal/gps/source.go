package gps

import (
	"fmt"
	"io"

	serial "github.com/jacobsa/go-serial/serial"
)

// ByteSource is anything the reader can pull pending bytes from.
// Read must not wait for data that has not arrived: it returns whatever is
// already buffered, and (0, nil) or io.EOF when nothing is pending.
type ByteSource interface {
	io.ReadCloser
}

// SerialConfig describes the receiver's serial port.
type SerialConfig struct {
	Port string
	Baud uint
}

// OpenSerial opens the GPS serial port in polled mode. MinimumReadSize 0
// plus an inter-character timeout makes Read return promptly with the bytes
// that have already arrived, so a silent receiver never stalls the clock.
func OpenSerial(cfg SerialConfig) (ByteSource, error) {
	opts := serial.OpenOptions{
		PortName:              cfg.Port,
		BaudRate:              cfg.Baud,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		MinimumReadSize:       0,
		InterCharacterTimeout: 100,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
	}
	return port, nil
}
