package gps

import (
	"fmt"
	"io"
	"time"
)

type mockSource struct {
	last time.Time
}

// NewMockSource synthesizes one valid RMC sentence per second from the
// system clock, so the whole pipeline can run without a receiver attached.
func NewMockSource() ByteSource {
	return &mockSource{}
}

func (m *mockSource) Read(p []byte) (int, error) {
	now := time.Now().UTC()
	if now.Sub(m.last) < time.Second {
		return 0, io.EOF
	}
	m.last = now

	payload := fmt.Sprintf(
		"GPRMC,%02d%02d%02d,A,4807.038,N,01131.000,E,022.4,084.4,%02d%02d%02d,003.1,W",
		now.Hour(), now.Minute(), now.Second(),
		now.Day(), int(now.Month()), now.Year()%100)
	ck := byte(0)
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	line := fmt.Sprintf("$%s*%02X\r\n", payload, ck)
	return copy(p, line), nil
}

func (m *mockSource) Close() error { return nil }
