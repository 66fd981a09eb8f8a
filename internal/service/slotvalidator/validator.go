package slotvalidator

import (
	"context"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	"github.com/m04kA/CMS-SchedulingService/pkg/types"
)

// Validator проверяет, можно ли записать пациента на интервал.
//
// Проверки выполняются по возрастанию стоимости: сначала чисто локальные
// (корректность диапазона, прошедшее время), затем календарь рабочих часов,
// и только в конце запрос к конфликтному индексу - самый дорогой шаг и
// единственный, требующий блокировки профессионала при бронировании.
type Validator struct {
	calendar WorkingHoursCalendar
	index    ConflictIndex
	logger   Logger
}

// New создает новый валидатор слотов
func New(calendar WorkingHoursCalendar, index ConflictIndex, logger Logger) *Validator {
	return &Validator{
		calendar: calendar,
		index:    index,
		logger:   logger,
	}
}

// Validate проверяет интервал для профессионала.
// Возвращает (nil, nil), если интервал можно бронировать;
// (*domain.Rejection, nil) с причиной отказа - бизнес-исход, не сбой;
// (nil, err) только при инфраструктурной ошибке.
//
// excludeID позволяет переносу записи игнорировать её собственный
// прежний интервал; 0 - без исключений.
//
// Запись не может пересекать полночь: рабочие часы сравниваются как
// время суток без даты, интервал с концом на следующий день никогда
// не пройдет проверку вхождения.
func (v *Validator) Validate(
	ctx context.Context,
	professionalID int64,
	interval domain.TimeRange,
	now time.Time,
	excludeID int64,
) (*domain.Rejection, error) {
	// 1. Корректность диапазона
	if !interval.Valid() {
		return domain.Reject(domain.ReasonInvalidRange), nil
	}

	// 2. Начало в прошлом
	if interval.Start.Before(now) {
		return domain.Reject(domain.ReasonPastDateTime), nil
	}

	// 3. Рабочий ли день
	day, err := v.calendar.ScheduleFor(ctx, professionalID, interval.Weekday())
	if err != nil {
		return nil, err
	}
	if day == nil {
		return domain.Reject(domain.ReasonProfessionalNotWorking), nil
	}

	// 4. Вхождение в рабочие часы (сравнение по времени суток)
	startOfDay := types.FromTime(interval.Start)
	endOfDay := types.FromTime(interval.End)
	if crossesMidnight(interval) || !day.Contains(startOfDay, endOfDay) {
		return domain.Reject(domain.ReasonOutsideWorkingHours), nil
	}

	// 5. Пересечение с перерывами
	if br := day.BreakConflict(startOfDay, endOfDay); br != nil {
		return domain.RejectBreakConflict(br), nil
	}

	// 6. Пересечение с существующими записями
	if conflicting := v.index.Overlaps(professionalID, interval, excludeID); len(conflicting) > 0 {
		return domain.RejectDoubleBooking(conflicting), nil
	}

	return nil, nil
}

// crossesMidnight проверяет, что интервал выходит за пределы календарного
// дня своего начала. Конец ровно в полночь тоже считается выходом:
// рабочие часы не могут включать 24:00.
func crossesMidnight(interval domain.TimeRange) bool {
	y1, m1, d1 := interval.Start.Date()
	y2, m2, d2 := interval.End.Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}
