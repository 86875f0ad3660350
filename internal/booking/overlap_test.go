package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 3, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	hour := time.Hour

	tests := []struct {
		name   string
		startA time.Time
		durA   time.Duration
		startB time.Time
		durB   time.Duration
		want   bool
	}{
		{"starts inside", at(10, 30), hour, at(10, 0), hour, true},
		{"ends inside", at(9, 30), hour, at(10, 0), hour, true},
		{"contains", at(9, 0), 3 * hour, at(10, 0), hour, true},
		{"contained", at(10, 15), 30 * time.Minute, at(10, 0), hour, true},
		{"identical", at(10, 0), hour, at(10, 0), hour, true},
		{"starts when other ends", at(11, 0), hour, at(10, 0), hour, false},
		{"ends when other starts", at(9, 0), hour, at(10, 0), hour, false},
		{"disjoint", at(13, 0), hour, at(10, 0), hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.startA, tt.durA, tt.startB, tt.durB))
			assert.Equal(t, tt.want, Overlaps(tt.startB, tt.durB, tt.startA, tt.durA), "overlap must be symmetric")
		})
	}
}

// Overlaps must agree with the plain half-open test for every pair of
// intervals on a small grid.
func TestOverlaps_MatchesHalfOpenDefinition(t *testing.T) {
	base := at(8, 0)
	step := 15 * time.Minute

	for a := 0; a < 12; a++ {
		for la := 1; la <= 6; la++ {
			for b := 0; b < 12; b++ {
				for lb := 1; lb <= 6; lb++ {
					startA, durA := base.Add(time.Duration(a)*step), time.Duration(la)*step
					startB, durB := base.Add(time.Duration(b)*step), time.Duration(lb)*step

					want := startA.Before(startB.Add(durB)) && startA.Add(durA).After(startB)
					if got := Overlaps(startA, durA, startB, durB); got != want {
						t.Fatalf("Overlaps(%v,%v,%v,%v) = %v, want %v", startA, durA, startB, durB, got, want)
					}
				}
			}
		}
	}
}
