package update_appointment

import (
	"context"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

type BookingCoordinator interface {
	Reschedule(ctx context.Context, appointmentID int64, newInterval domain.TimeRange) (*domain.Appointment, error)
	TransitionStatus(ctx context.Context, appointmentID int64, newStatus domain.AppointmentStatus) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
