package conflicts

import "time"

// Window is a half-open occupancy interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds the raw occupancy window for a seating starting at the
// given instant.
func NewWindow(start time.Time, durationMinutes int) Window {
	return Window{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Expand widens the window by the venue's service buffer. The expanded
// window is what conflict math compares; the guest-visible duration is
// untouched.
func (w Window) Expand(beforeMinutes, afterMinutes int) Window {
	return Window{
		Start: w.Start.Add(-time.Duration(beforeMinutes) * time.Minute),
		End:   w.End.Add(time.Duration(afterMinutes) * time.Minute),
	}
}

// Overlaps reports whether two half-open windows intersect. Touching
// boundaries do not overlap: a seating may start exactly when another ends.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Contains reports whether the instant falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
