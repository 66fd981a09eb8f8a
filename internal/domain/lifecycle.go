package domain

// Appointment lifecycle:
//
//	scheduled -> confirmed -> in_progress -> completed
//	scheduled | confirmed | in_progress  -> cancelled
//	scheduled | confirmed                -> no_show
//
// completed, cancelled and no_show are terminal. An appointment that
// already started cannot become a no-show, and an appointment cannot
// start before it is confirmed.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// occupyingStatuses are the states whose intervals live in the conflict index
var occupyingStatuses = map[AppointmentStatus]bool{
	StatusScheduled:  true,
	StatusConfirmed:  true,
	StatusInProgress: true,
}

// CanTransition reports whether from -> to is a legal lifecycle step
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsOccupying returns true if an appointment in this status blocks its interval
func (s AppointmentStatus) IsOccupying() bool {
	return occupyingStatuses[s]
}

// IsTerminal returns true if no further transition is possible from this status
func (s AppointmentStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// OccupyingStatuses lists the statuses whose intervals block the calendar.
// Repositories use it to select rows for the conflict-index warm-up.
var OccupyingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses lists the final statuses, used to filter out
// inactive appointments.
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
