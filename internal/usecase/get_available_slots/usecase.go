package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	"github.com/m04kA/CMS-SchedulingService/pkg/types"
)

// Usecase генератор доступных слотов на день.
// Кандидаты перебираются с шагом granularity от начала рабочего дня,
// каждый прогоняется через общий валидатор - перерывы, конфликты и
// прошедшее время отсеиваются той же логикой, что и при бронировании.
type Usecase struct {
	calendar     WorkingHoursCalendar
	validator    SlotValidator
	timeProvider TimeProvider
	logger       Logger
}

// NewUsecase создает новый usecase получения доступных слотов
func NewUsecase(calendar WorkingHoursCalendar, validator SlotValidator, timeProvider TimeProvider, logger Logger) *Usecase {
	return &Usecase{
		calendar:     calendar,
		validator:    validator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute возвращает доступные слоты профессионала на указанную дату.
// Нерабочий день - пустой список, не ошибка.
func (u *Usecase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := u.validateRequest(&req); err != nil {
		u.logger.Warn("Execute: invalid request: %v", err)
		return nil, err
	}

	u.logger.Info("Execute: generating slots for professional=%d, date=%s, duration=%d, granularity=%d",
		req.ProfessionalID, req.Date.Format(domain.DateFormat), req.DurationMinutes, req.GranularityMinutes)

	schedule, err := u.calendar.ScheduleFor(ctx, req.ProfessionalID, req.Date.Weekday())
	if err != nil {
		u.logger.Error("Execute: calendar error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: Execute - calendar error: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:           req.Date,
		ProfessionalID: req.ProfessionalID,
		Slots:          []domain.TimeRange{},
	}

	if schedule == nil {
		// Нерабочий день
		return resp, nil
	}

	now := u.timeProvider.Now()

	for start := schedule.Start; ; {
		end, addErr := start.AddMinutes(req.DurationMinutes)
		if addErr != nil || schedule.End.Before(end) {
			// Слот не помещается до конца рабочего дня
			break
		}

		interval := domain.TimeRange{
			Start: at(req.Date, start),
			End:   at(req.Date, end),
		}

		rejection, err := u.validator.Validate(ctx, req.ProfessionalID, interval, now, 0)
		if err != nil {
			u.logger.Error("Execute: validator error for professional=%d: %v", req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: Execute - validator error: %v", ErrInternal, err)
		}
		if rejection == nil {
			resp.Slots = append(resp.Slots, interval)
		}

		next, addErr := start.AddMinutes(req.GranularityMinutes)
		if addErr != nil {
			break
		}
		start = next
	}

	u.logger.Info("Execute: generated %d slots for professional=%d, date=%s",
		len(resp.Slots), req.ProfessionalID, req.Date.Format(domain.DateFormat))

	return resp, nil
}

// at собирает момент времени из даты и времени суток в локации даты
func at(date time.Time, t types.TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(t)/60, int(t)%60, 0, 0, date.Location())
}
