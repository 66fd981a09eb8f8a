package get_patient_appointments

import (
	"time"

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
