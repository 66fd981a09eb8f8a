package coordinator

import (
	"context"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateInterval(ctx context.Context, id int64, interval domain.TimeRange) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
	ListOccupying(ctx context.Context) ([]*domain.Appointment, error)
}

// SlotValidator интерфейс валидатора интервалов
type SlotValidator interface {
	Validate(ctx context.Context, professionalID int64, interval domain.TimeRange, now time.Time, excludeID int64) (*domain.Rejection, error)
}

// ConflictIndex интерфейс индекса занятых интервалов (мутирующая часть).
// Координатор - единственный компонент, которому разрешено менять индекс.
type ConflictIndex interface {
	Insert(professionalID, appointmentID int64, interval domain.TimeRange)
	Remove(professionalID, appointmentID int64)
	Update(professionalID, appointmentID int64, newInterval domain.TimeRange)
	Size() int
}

// ProfessionalLock интерфейс пер-профессиональной блокировки
type ProfessionalLock interface {
	Lock(ctx context.Context, key int64) error
	Unlock(key int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс метрик координатора (допускает nil-реализацию)
type Metrics interface {
	ObserveOutcome(operation, outcome string)
	ObserveLockWait(operation string, seconds float64)
	SetConflictIndexSize(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
