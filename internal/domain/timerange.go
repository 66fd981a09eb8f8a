package domain

import "time"

// TimeRange is a half-open interval [Start, End) of absolute instants.
// An appointment ending exactly when another one starts does not overlap it.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange constructs a TimeRange without validating it
func NewTimeRange(start, end time.Time) TimeRange {
	return TimeRange{Start: start, End: end}
}

// Valid returns true if the range is non-degenerate (Start < End)
func (r TimeRange) Valid() bool {
	return r.Start.Before(r.End)
}

// Overlaps reports whether two half-open intervals intersect.
// Strict inequalities: touching boundaries are not a conflict.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Minutes returns the duration of the range in whole minutes
func (r TimeRange) Minutes() int {
	return int(r.End.Sub(r.Start) / time.Minute)
}

// Weekday returns the weekday the range starts on
func (r TimeRange) Weekday() time.Weekday {
	return r.Start.Weekday()
}
