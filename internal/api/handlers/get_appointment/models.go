package get_appointment

import (
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/service/appointments/models"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	ProfessionalID     int64   `json:"professionalId"`
	PatientID          int64   `json:"patientId"`
	Start              string  `json:"start"`
	End                string  `json:"end"`
	Status             string  `json:"status"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(appt *models.AppointmentResponse) *AppointmentResponse {
	resp := &AppointmentResponse{
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
	}
	if appt.CancelledAt != nil {
		cancelledAt := appt.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}
	return resp
}
