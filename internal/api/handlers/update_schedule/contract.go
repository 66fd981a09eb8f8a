package update_schedule

import (
	"context"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

type ScheduleService interface {
	ReplaceWeek(ctx context.Context, professionalID int64, week domain.WeeklySchedule) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
