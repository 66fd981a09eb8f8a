package get_schedule

import (
	"strings"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
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

// WeeklyScheduleResponse HTTP модель недельного расписания.
// Ключи - дни недели в нижнем регистре; отсутствие дня означает выходной.
type WeeklyScheduleResponse struct {
	ProfessionalID int64                        `json:"professionalId"`
	Schedule       map[string]*DayScheduleModel `json:"schedule"`
}

// FromDomainSchedule конвертирует domain расписание в HTTP response
func FromDomainSchedule(professionalID int64, week domain.WeeklySchedule) *WeeklyScheduleResponse {
	resp := &WeeklyScheduleResponse{
		ProfessionalID: professionalID,
		Schedule:       make(map[string]*DayScheduleModel, len(week)),
	}

	for day, schedule := range week {
		model := &DayScheduleModel{
			Start: schedule.Start.String(),
			End:   schedule.End.String(),
		}
		for _, br := range schedule.Breaks {
			model.Breaks = append(model.Breaks, BreakModel{
				Start: br.Start.String(),
				End:   br.End.String(),
			})
		}
		resp.Schedule[strings.ToLower(day.String())] = model
	}

	return resp
}
