package appointments

import (
	"context"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей (read-only часть:
// все мутации идут через координатор)
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByProfessional(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
