package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/CMS-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного доступного слота
type SlotResponse struct {
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`
}

// AvailableSlotsResponse HTTP модель ответа со слотами на день
type AvailableSlotsResponse struct {
	ProfessionalID int64          `json:"professionalId"`
	Date           string         `json:"date"` // YYYY-MM-DD
	Slots          []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из path и query параметров
func ToUseCaseRequest(professionalID int64, dateStr, durationStr, granularityStr string) (getAvailableSlots.Request, error) {
	req := getAvailableSlots.Request{ProfessionalID: professionalID}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return getAvailableSlots.Request{}, err
	}
	req.Date = date

	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return getAvailableSlots.Request{}, err
	}
	req.DurationMinutes = duration

	if granularityStr != "" {
		granularity, err := strconv.Atoi(granularityStr)
		if err != nil {
			return getAvailableSlots.Request{}, err
		}
		req.GranularityMinutes = granularity
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		ProfessionalID: resp.ProfessionalID,
		Date:           resp.Date.Format(domain.DateFormat),
		Slots:          make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			Start: slot.Start.Format(time.RFC3339),
			End:   slot.End.Format(time.RFC3339),
		})
	}
	return result
}
