// Package clock supplies the facility clock.
//
// All timestamps in the system are facility-local wall-clock times carried in
// a time.Time whose location is UTC. No offset is stored or applied: 10:00 at
// the front desk is 10:00Z in memory and 10:00 in a "timestamp without time
// zone" column.
package clock

import (
	"fmt"
	"time"
)

type Clock interface {
	Now() time.Time
}

// Local reads the process clock in loc and re-labels the wall time as UTC.
type Local struct {
	Location *time.Location
}

func (c Local) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return Wall(time.Now().In(loc))
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Wall drops the offset of t and keeps its wall clock, truncated to microseconds
// to match Postgres precision.
func Wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC).
		Truncate(time.Microsecond)
}

// WallLayout is how facility-local timestamps are written on the wire.
const WallLayout = "2006-01-02T15:04:05"

var wallLayouts = []string{WallLayout, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"}

// ParseWall reads a facility-local timestamp. RFC 3339 input is accepted too;
// its offset is dropped and the wall clock kept.
func ParseWall(s string) (time.Time, error) {
	for _, layout := range wallLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Wall(t), nil
	}
	return time.Time{}, fmt.Errorf("clock: cannot parse %q as a timestamp", s)
}
