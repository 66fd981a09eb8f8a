package get_schedule

import (
	"context"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

type ScheduleService interface {
	GetWeek(ctx context.Context, professionalID int64) (domain.WeeklySchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
