// Package zone holds the process-wide time-zone selection and the catalog
// of zones offered for selection.
package zone

import (
	"sync/atomic"
)

// Selection is the current zone choice. The clock goroutine reads it once
// per tick; the UI side may swap it at any moment. A tick that still sees
// the previous value is acceptable, so a plain atomic string is enough.
type Selection struct {
	name atomic.Value
}

func NewSelection(name string) *Selection {
	s := &Selection{}
	s.name.Store(name)
	return s
}

// Current returns the selected zone name.
func (s *Selection) Current() string {
	v, _ := s.name.Load().(string)
	return v
}

// Set replaces the selected zone name.
func (s *Selection) Set(name string) {
	s.name.Store(name)
}
