package clock

import (
	"fmt"
	"time"
)

// LocalizedTime is one zone-adjusted reading of the GPS time, broken into
// calendar fields ready for display and JSON-shaped for the MQTT topic.
type LocalizedTime struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Second int    `json:"second"`
	Zone   string `json:"zone"` // zone the fields are expressed in

	// UTC is the instant the receiver reported, before projection.
	UTC time.Time `json:"utc"`
}

// DateString returns the calendar date as "2006-01-02".
func (t LocalizedTime) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year, t.Month, t.Day)
}

// TimeString returns the time of day as "15:04:05".
func (t LocalizedTime) TimeString() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t LocalizedTime) String() string {
	return t.DateString() + " " + t.TimeString() + " " + t.Zone
}
