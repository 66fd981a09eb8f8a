package create_appointment

import (
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	"github.com/m04kA/CMS-SchedulingService/internal/service/coordinator"
)

// CreateAppointmentRequest HTTP request model.
// ID профессионала приходит в path, не в теле.
type CreateAppointmentRequest struct {
	PatientID int64   `json:"patientId"`
	Start     string  `json:"start"` // RFC3339, например "2026-09-01T10:00:00+03:00"
	End       string  `json:"end"`
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             int64   `json:"id"`
	ProfessionalID int64   `json:"professionalId"`
	PatientID      int64   `json:"patientId"`
	Start          string  `json:"start"`
	End            string  `json:"end"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToCoordinatorRequest конвертирует HTTP запрос в модель координатора
func (r *CreateAppointmentRequest) ToCoordinatorRequest(professionalID int64) (*coordinator.BookRequest, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}

	return &coordinator.BookRequest{
		ProfessionalID: professionalID,
		PatientID:      r.PatientID,
		Interval:       domain.TimeRange{Start: start, End: end},
		Notes:          r.Notes,
	}, nil
}

// FromDomainAppointment конвертирует domain модель в HTTP response
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             appt.ID,
		ProfessionalID: appt.ProfessionalID,
		PatientID:      appt.PatientID,
		Start:          appt.Interval.Start.Format(time.RFC3339),
		End:            appt.Interval.End.Format(time.RFC3339),
		Status:         string(appt.Status),
		Notes:          appt.Notes,
		CreatedAt:      appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      appt.UpdatedAt.Format(time.RFC3339),
	}
}
