package slotvalidator

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

// ConflictIndex интерфейс индекса занятых интервалов
type ConflictIndex interface {
	Overlaps(professionalID int64, interval domain.TimeRange, excludeID int64) []int64
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
