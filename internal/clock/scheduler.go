package clock

import (
	"log"
	"time"
)

// Drainer hands over the lines a receiver has produced since the last call
// without waiting for more.
type Drainer interface {
	Drain() ([]string, error)
}

// ZoneSource supplies the zone name for each tick. It may be swapped from
// another goroutine between ticks; a tick that still sees the previous
// value is fine.
type ZoneSource interface {
	Current() string
}

// Sink consumes whole zone-adjusted time values, at most one per tick.
type Sink interface {
	Show(LocalizedTime) error
}

// Scheduler drives the drain/decode/project pipeline on a fixed cadence
// and forwards each produced time to the sink.
type Scheduler struct {
	Reader Drainer
	Sync   *Synchronizer
	Zone   ZoneSource
	Sink   Sink

	// Interval between ticks; one second when zero.
	Interval time.Duration
}

// Run loops until stop is closed. The timer is re-armed after each pass
// completes, so a pass that overruns shifts the schedule instead of
// stacking missed ticks. Data and read errors never stop the loop; a
// disconnected receiver may come back on a later tick.
func (s *Scheduler) Run(stop <-chan struct{}) error {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return nil
		case <-timer.C:
		}

		lines, err := s.Reader.Drain()
		if err != nil {
			log.Printf("clock: receiver read error, keeping last time: %v", err)
		}

		if lt, ok := s.Sync.Tick(lines, s.Zone.Current()); ok {
			if err := s.Sink.Show(lt); err != nil {
				log.Printf("clock: display sink error: %v", err)
			}
		}

		timer.Reset(interval)
	}
}
