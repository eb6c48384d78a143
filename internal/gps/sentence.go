package gps

import (
	"strings"
	"time"

	nmea "github.com/adrianmo/go-nmea"
)

// Kind tags the outcome of decoding one NMEA line.
type Kind int

const (
	// KindUnparseable marks a line that failed sentinel, checksum or field
	// validation. Err carries the diagnostic.
	KindUnparseable Kind = iota
	// KindOther marks a recognized sentence type the clock does not use
	// (GGA, GSA, GSV, ...).
	KindOther
	// KindRMC marks a recommended-minimum sentence, the one type that
	// carries date, time and fix validity together.
	KindRMC
)

// Sentence is one decoded NMEA line. Only KindRMC sentences carry the
// fields the clock needs.
type Sentence struct {
	Kind Kind
	Type string // NMEA type code, e.g. "RMC", "GGA"
	Err  error  // diagnostic for KindUnparseable

	// RMC payload. Year is the full four-digit year.
	Hour, Minute, Second int
	Day, Month, Year     int
	Valid                bool // fix validity flag, 'A' in the sentence
	TimeSet, DateSet     bool
}

// Decode parses one line from the receiver. It never fails hard: lines
// that do not survive go-nmea's validation come back as KindUnparseable
// with the diagnostic attached, and every other recognized sentence type
// comes back as KindOther for downstream stages to skip.
func Decode(line string) Sentence {
	s, err := nmea.Parse(strings.TrimSpace(line))
	if err != nil {
		return Sentence{Kind: KindUnparseable, Err: err}
	}

	if s.DataType() != nmea.TypeRMC {
		return Sentence{Kind: KindOther, Type: s.DataType()}
	}
	m, ok := s.(nmea.RMC)
	if !ok {
		return Sentence{Kind: KindOther, Type: s.DataType()}
	}

	return Sentence{
		Kind:    KindRMC,
		Type:    nmea.TypeRMC,
		Hour:    m.Time.Hour,
		Minute:  m.Time.Minute,
		Second:  m.Time.Second, // fractional seconds discarded
		Day:     m.Date.DD,
		Month:   m.Date.MM,
		Year:    fullYear(m.Date.YY),
		Valid:   m.Validity == nmea.ValidRMC,
		TimeSet: m.Time.Valid,
		DateSet: m.Date.Valid,
	}
}

// fullYear expands the RMC two-digit year with the POSIX pivot: 69-99 map
// to 1969-1999, 00-68 to 2000-2068. The classic $GPRMC reference sentence
// is dated 1994, so the pivot matters for more than new receivers.
func fullYear(yy int) int {
	if yy >= 69 {
		return 1900 + yy
	}
	return 2000 + yy
}

// UTCInstant returns the instant carried by an RMC sentence whose fix is
// valid and whose time and date fields were both populated. Date and time
// always come from the same sentence, never mixed across lines.
func (s Sentence) UTCInstant() (time.Time, bool) {
	if s.Kind != KindRMC || !s.Valid || !s.TimeSet || !s.DateSet {
		return time.Time{}, false
	}
	t := time.Date(s.Year, time.Month(s.Month), s.Day, s.Hour, s.Minute, s.Second, 0, time.UTC)
	return t, true
}
