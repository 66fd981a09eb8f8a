package update_appointment

import (
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// UpdateAppointmentRequest HTTP request model.
// Тело запроса несет либо новый интервал (start + end), либо новый статус.
type UpdateAppointmentRequest struct {
	Start  string `json:"start,omitempty"` // RFC3339
	End    string `json:"end,omitempty"`
	Status string `json:"status,omitempty"` // confirmed | in_progress | completed | no_show
}

// IsReschedule true, если запрос несет новый интервал
func (r *UpdateAppointmentRequest) IsReschedule() bool {
	return r.Start != "" || r.End != ""
}

// IsStatusUpdate true, если запрос несет новый статус
func (r *UpdateAppointmentRequest) IsStatusUpdate() bool {
	return r.Status != ""
}

// ToInterval парсит запрашиваемый интервал
func (r *UpdateAppointmentRequest) ToInterval() (domain.TimeRange, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return domain.TimeRange{}, err
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return domain.TimeRange{}, err
	}
	return domain.TimeRange{Start: start, End: end}, nil
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
