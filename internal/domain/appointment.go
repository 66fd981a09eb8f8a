package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// ParseAppointmentStatus validates a status string coming from the API or DB
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	switch status {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return status, nil
	default:
		return "", ErrUnknownStatus
	}
}

// Appointment represents a patient visit booked into a professional's calendar
type Appointment struct {
	ID             int64
	ProfessionalID int64
	PatientID      int64
	Interval       TimeRange
	Status         AppointmentStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying returns true if the appointment's interval belongs
// in the conflict index (it blocks the professional's calendar)
func (a *Appointment) IsOccupying() bool {
	return a.Status.IsOccupying()
}

// CanBeRescheduled returns true if the appointment's interval may still change
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed || a.Status == StatusInProgress
}

// IsTerminal returns true if the appointment reached a final state
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// AppointmentFilter narrows a professional's appointment listing
type AppointmentFilter struct {
	ProfessionalID  int64              // required
	StartDate       *time.Time         // optional period start
	EndDate         *time.Time         // optional period end
	Status          *AppointmentStatus // optional status filter
	IncludeInactive bool               // include terminal appointments (completed, cancelled, no_show)
}
