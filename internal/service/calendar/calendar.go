package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/CMS-SchedulingService/internal/infra/storage/schedule"
)

// ErrInternal возвращается при инфраструктурных ошибках календаря
var ErrInternal = errors.New("calendar: internal error")

// Calendar календарь рабочих часов профессионалов.
// Только чтение: расписание меняется внешней фичей управления
// профессионалами через сервис расписаний.
type Calendar struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// New создает новый календарь поверх репозитория расписаний
func New(scheduleRepo ScheduleRepository, logger Logger) *Calendar {
	return &Calendar{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// ScheduleFor возвращает расписание профессионала на день недели.
// nil без ошибки означает нерабочий день - это легитимное состояние,
// а не сбой.
func (c *Calendar) ScheduleFor(ctx context.Context, professionalID int64, weekday time.Weekday) (*domain.DaySchedule, error) {
	day, err := c.scheduleRepo.GetDay(ctx, professionalID, weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, nil
		}
		c.logger.Error("ScheduleFor: failed to get schedule for professional=%d, weekday=%s: %v",
			professionalID, weekday, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	return day, nil
}
