package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/CMS-SchedulingService/pkg/types"
)

// BreakWindow is a pause inside a working day (lunch, admin time)
// during which no appointment may be scheduled.
type BreakWindow struct {
	Start types.TimeOfDay `json:"start"`
	End   types.TimeOfDay `json:"end"`
}

// Overlaps reports whether the break intersects the half-open
// time-of-day interval [start, end). Strict inequalities, same rule
// as TimeRange.Overlaps.
func (b BreakWindow) Overlaps(start, end types.TimeOfDay) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

// DaySchedule describes the bookable hours of one weekday.
// Invariants (enforced by Validate):
//   - Start < End
//   - every break lies inside [Start, End]
//   - breaks are sorted by start and do not overlap each other
type DaySchedule struct {
	Start  types.TimeOfDay `json:"start"`
	End    types.TimeOfDay `json:"end"`
	Breaks []BreakWindow   `json:"breaks,omitempty"`
}

// Validate checks the DaySchedule invariants
func (d *DaySchedule) Validate() error {
	if err := d.Start.Validate(); err != nil {
		return err
	}
	if err := d.End.Validate(); err != nil {
		return err
	}
	if !d.Start.Before(d.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSchedule, d.Start, d.End)
	}

	prevEnd := d.Start
	for i, br := range d.Breaks {
		if !br.Start.Before(br.End) {
			return fmt.Errorf("%w: break %d start %s must be before end %s", ErrInvalidSchedule, i, br.Start, br.End)
		}
		if br.Start.Before(d.Start) || d.End.Before(br.End) {
			return fmt.Errorf("%w: break %d (%s-%s) is outside working hours %s-%s",
				ErrInvalidSchedule, i, br.Start, br.End, d.Start, d.End)
		}
		if br.Start.Before(prevEnd) {
			return fmt.Errorf("%w: break %d (%s-%s) overlaps or is out of order", ErrInvalidSchedule, i, br.Start, br.End)
		}
		prevEnd = br.End
	}

	return nil
}

// Contains reports whether the time-of-day interval [start, end]
// lies fully inside the working hours
func (d *DaySchedule) Contains(start, end types.TimeOfDay) bool {
	return !start.Before(d.Start) && !d.End.Before(end)
}

// BreakConflict returns the first break overlapping [start, end), or nil
func (d *DaySchedule) BreakConflict(start, end types.TimeOfDay) *BreakWindow {
	for i := range d.Breaks {
		if d.Breaks[i].Overlaps(start, end) {
			br := d.Breaks[i]
			return &br
		}
	}
	return nil
}

// WeeklySchedule maps weekdays to their working hours.
// A missing entry means the professional does not work that day.
// time.Weekday is a closed enum, so a lookup can never miss on
// formatting grounds the way a string-keyed map could.
type WeeklySchedule map[time.Weekday]*DaySchedule

// Validate checks every day of the week
func (w WeeklySchedule) Validate() error {
	for day, schedule := range w {
		if schedule == nil {
			return fmt.Errorf("%w: nil schedule for %s", ErrInvalidSchedule, day)
		}
		if err := schedule.Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}
