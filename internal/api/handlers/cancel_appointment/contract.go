package cancel_appointment

import (
	"context"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

type BookingCoordinator interface {
	Cancel(ctx context.Context, appointmentID int64, reason *string) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
