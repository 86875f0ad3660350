// Package booking decides whether a member can book a trainer for a time
// slot and records the booking when they can.
package booking

import "time"

// Overlaps reports whether the half-open intervals [startA, startA+durA)
// and [startB, startB+durB) intersect. Intervals that only touch at an
// endpoint do not overlap.
func Overlaps(startA time.Time, durA time.Duration, startB time.Time, durB time.Duration) bool {
	endA := startA.Add(durA)
	endB := startB.Add(durB)

	startsInside := !startA.Before(startB) && startA.Before(endB)
	endsInside := endA.After(startB) && !endA.After(endB)
	contains := !startA.After(startB) && !endA.Before(endB)

	return startsInside || endsInside || contains
}
