package incentive

import "time"

// Period is the window in which a program accepts installations. Start is
// inclusive, End is exclusive and a zero bound is open.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains checks if t is within the period.
func (p Period) Contains(t time.Time) bool {
	if !p.Start.IsZero() && t.Before(p.Start) {
		return false
	}
	if !p.End.IsZero() && !t.Before(p.End) {
		return false
	}
	return true
}

// Through returns a period ending after the last day of the given date.
func Through(year int, month time.Month, day int) Period {
	return Period{End: time.Date(year, month, day+1, 0, 0, 0, 0, time.UTC)}
}

// Day returns midnight UTC of the calendar date t falls on in its own
// location, the form Period bounds are expressed in.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
