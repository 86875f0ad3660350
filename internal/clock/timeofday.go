package clock

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within a day, in seconds since midnight.
// EndOfDay (24:00) is allowed as an exclusive upper bound.
type TimeOfDay int

const EndOfDay TimeOfDay = 24 * 60 * 60

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60)
}

// Of returns the time of day of t's wall clock.
func Of(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// ParseTimeOfDay accepts HH:MM and HH:MM:SS, including 24:00.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	n, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	if n < 2 {
		if _, err = fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		sec = 0
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	tod := TimeOfDay(h*3600 + m*60 + sec)
	if tod > EndOfDay {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return tod, nil
}

func (t TimeOfDay) String() string {
	h, m, s := int(t)/3600, int(t)%3600/60, int(t)%60
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

func (t TimeOfDay) Value() (driver.Value, error) {
	h, m, s := int(t)/3600, int(t)%3600/60, int(t)%60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = Of(v)
		return nil
	case []byte:
		return t.parseInto(string(v))
	case string:
		return t.parseInto(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t *TimeOfDay) parseInto(s string) error {
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = tod
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.parseInto(s)
}

// Span is the [start, end) time-of-day range covered by an interval that
// starts at start and lasts d. ok is false when the interval does not end
// on the day it starts.
func Span(start time.Time, d time.Duration) (from, to TimeOfDay, ok bool) {
	end := start.Add(d)
	from = Of(start)
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to = TimeOfDay(end.Sub(dayStart) / time.Second)
	return from, to, to <= EndOfDay
}
