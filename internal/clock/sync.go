package clock

import (
	"log"
	"time"

	"github.com/KD5VMF/GPS-Clock/internal/gps"
)

// Synchronizer keeps the last trustworthy UTC instant from the receiver and
// projects it into the selected time zone once per tick.
type Synchronizer struct {
	lastGood time.Time
	haveGood bool
	badZones map[string]bool // zone names already complained about
}

func NewSynchronizer() *Synchronizer {
	return &Synchronizer{badZones: make(map[string]bool)}
}

// Tick decodes one drained batch of lines. The first RMC sentence with a
// valid fix and populated date and time decides the result; the rest of
// the batch is still decoded so corrupt records get logged, but it cannot
// override the winner. When nothing in the batch carries a usable time the
// previously shown value stands: ok is false and no LocalizedTime is
// produced.
func (s *Synchronizer) Tick(lines []string, zoneName string) (LocalizedTime, bool) {
	var instant time.Time
	found := false

	for _, line := range lines {
		sent := gps.Decode(line)
		switch sent.Kind {
		case gps.KindUnparseable:
			log.Printf("clock: unparseable sentence: %v", sent.Err)
		case gps.KindRMC:
			if found {
				continue
			}
			if t, ok := sent.UTCInstant(); ok {
				instant = t
				found = true
			}
		}
	}

	if !found {
		return LocalizedTime{}, false
	}

	s.lastGood = instant
	s.haveGood = true
	return s.localize(instant, zoneName), true
}

// LastGood reports the most recent valid UTC instant seen, if any.
func (s *Synchronizer) LastGood() (time.Time, bool) {
	return s.lastGood, s.haveGood
}

// localize projects a UTC instant into the named zone. An unknown zone
// name falls back to UTC with a one-time diagnostic per name; the clock
// keeps running either way.
func (s *Synchronizer) localize(utc time.Time, zoneName string) LocalizedTime {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		if !s.badZones[zoneName] {
			s.badZones[zoneName] = true
			log.Printf("clock: unknown time zone %q, falling back to UTC: %v", zoneName, err)
		}
		loc = time.UTC
		zoneName = "UTC"
	}
	if zoneName == "" {
		zoneName = "UTC"
	}

	t := utc.In(loc)
	return LocalizedTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
		Zone:   zoneName,
		UTC:    utc,
	}
}
