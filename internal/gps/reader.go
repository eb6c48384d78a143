package gps

import (
	"bytes"
	"errors"
	"io"
	"log"
)

// maxPending caps the partial-line buffer so a receiver that never sends a
// line ending cannot grow it without bound.
const maxPending = 4096

// Reader splits the byte stream from a GPS receiver into complete text
// lines. Drain never blocks: it returns only what has already arrived and
// holds a trailing partial line until the rest of it shows up.
type Reader struct {
	src     ByteSource
	pending []byte
	chunk   [256]byte
}

func NewReader(src ByteSource) *Reader {
	return &Reader{src: src}
}

// Drain returns every complete line currently buffered on the source.
// A silent receiver yields an empty batch and no error. Lines with bytes
// outside printable ASCII are dropped and logged; they never abort the
// batch. A real device error is returned together with whatever complete
// lines were read before it, and the partial buffer survives so a
// reconnecting receiver picks up where it left off.
func (r *Reader) Drain() ([]string, error) {
	var readErr error
	for {
		n, err := r.src.Read(r.chunk[:])
		if n > 0 {
			r.pending = append(r.pending, r.chunk[:n]...)
		}
		if err != nil {
			// A polled port reports an empty buffer as io.EOF; that is
			// "nothing yet", not end of stream.
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
		if n == 0 {
			break
		}
	}

	var lines []string
	for {
		i := bytes.IndexByte(r.pending, '\n')
		if i < 0 {
			break
		}
		raw := r.pending[:i]
		r.pending = r.pending[i+1:]

		line, ok := sanitizeLine(raw)
		if !ok {
			log.Printf("gps: dropping undecodable line (%d bytes)", len(raw))
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(r.pending) == 0 {
		r.pending = nil
	} else if len(r.pending) > maxPending {
		log.Printf("gps: discarding %d buffered bytes with no line ending", len(r.pending))
		r.pending = nil
	}

	return lines, readErr
}

// sanitizeLine trims the trailing CR and surrounding whitespace and rejects
// lines carrying bytes outside printable ASCII. NMEA is pure ASCII, so
// anything else is serial noise.
func sanitizeLine(raw []byte) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	for _, b := range trimmed {
		if b < 0x20 || b > 0x7e {
			return "", false
		}
	}
	return string(trimmed), true
}
