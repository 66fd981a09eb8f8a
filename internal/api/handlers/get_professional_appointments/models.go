package get_professional_appointments

import (
	"strconv"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	"github.com/m04kA/CMS-SchedulingService/internal/service/appointments/models"
)

// AppointmentResponse HTTP модель записи в списке
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	ProfessionalID     int64   `json:"professionalId"`
	PatientID          int64   `json:"patientId"`
	Start              string  `json:"start"`
	End                string  `json:"end"`
	Status             string  `json:"status"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// AppointmentListResponse HTTP модель списка записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
}

// ToServiceRequest собирает запрос к сервису из path и query параметров
func ToServiceRequest(professionalID int64, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.GetProfessionalAppointmentsRequest, error) {
	req := &models.GetProfessionalAppointmentsRequest{
		ProfessionalID: professionalID,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentListResponse) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]*AppointmentResponse, 0, len(resp.Appointments)),
	}
	for _, appt := range resp.Appointments {
		result.Appointments = append(result.Appointments, &AppointmentResponse{
			ID:                 appt.ID,
			ProfessionalID:     appt.ProfessionalID,
			PatientID:          appt.PatientID,
			Start:              appt.Start.Format(time.RFC3339),
			End:                appt.End.Format(time.RFC3339),
			Status:             appt.Status,
			Notes:              appt.Notes,
			CancellationReason: appt.CancellationReason,
			CreatedAt:          appt.CreatedAt.Format(time.RFC3339),
			UpdatedAt:          appt.UpdatedAt.Format(time.RFC3339),
		})
	}
	return result
}
