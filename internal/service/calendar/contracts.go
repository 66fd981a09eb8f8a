package calendar

import (
	"context"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetDay(ctx context.Context, professionalID int64, weekday time.Weekday) (*domain.DaySchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
