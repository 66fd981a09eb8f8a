package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// WorkingHoursCalendar интерфейс календаря рабочих часов.
// nil-расписание без ошибки означает нерабочий день.
type WorkingHoursCalendar interface {
	ScheduleFor(ctx context.Context, professionalID int64, weekday time.Weekday) (*domain.DaySchedule, error)
}

// SlotValidator интерфейс валидатора интервалов.
// Генератор переиспользует общий валидатор вместо дублирования
// логики перерывов и конфликтов.
type SlotValidator interface {
	Validate(ctx context.Context, professionalID int64, interval domain.TimeRange, now time.Time, excludeID int64) (*domain.Rejection, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
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
