package update_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	"github.com/m04kA/CMS-SchedulingService/pkg/types"
)

// BreakModel HTTP модель перерыва
type BreakModel struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`
}

// DayScheduleModel HTTP модель рабочего дня
type DayScheduleModel struct {
	Start  string       `json:"start"`
	End    string       `json:"end"`
	Breaks []BreakModel `json:"breaks,omitempty"`
}

// UpdateScheduleRequest HTTP модель запроса на замену расписания.
// Ключи - дни недели в нижнем регистре; отсутствие дня означает выходной.
type UpdateScheduleRequest struct {
	Schedule map[string]*DayScheduleModel `json:"schedule"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToDomainSchedule конвертирует HTTP запрос в domain расписание
func (r *UpdateScheduleRequest) ToDomainSchedule() (domain.WeeklySchedule, error) {
	week := make(domain.WeeklySchedule, len(r.Schedule))

	for dayName, model := range r.Schedule {
		day, ok := weekdays[dayName]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", dayName)
		}
		if model == nil {
			return nil, fmt.Errorf("missing schedule for %q", dayName)
		}

		start, err := types.ParseTimeOfDay(model.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.ParseTimeOfDay(model.End)
		if err != nil {
			return nil, err
		}

		schedule := &domain.DaySchedule{Start: start, End: end}
		for _, br := range model.Breaks {
			brStart, err := types.ParseTimeOfDay(br.Start)
			if err != nil {
				return nil, err
			}
			brEnd, err := types.ParseTimeOfDay(br.End)
			if err != nil {
				return nil, err
			}
			schedule.Breaks = append(schedule.Breaks, domain.BreakWindow{Start: brStart, End: brEnd})
		}

		week[day] = schedule
	}

	return week, nil
}
