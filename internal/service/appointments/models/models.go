package models

import (
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// GetProfessionalAppointmentsRequest запрос списка записей профессионала
type GetProfessionalAppointmentsRequest struct {
	ProfessionalID  int64      // ID профессионала
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включать ли терминальные записи
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *GetProfessionalAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		ProfessionalID:  r.ProfessionalID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return domain.AppointmentFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetPatientAppointmentsRequest запрос истории записей пациента
type GetPatientAppointmentsRequest struct {
	PatientID int64   // ID пациента
	Status    *string // Фильтр по статусу (опционально)
}

// AppointmentResponse модель записи для ответа сервиса
type AppointmentResponse struct {
	ID                 int64
	ProfessionalID     int64
	PatientID          int64
	Start              time.Time
	End                time.Time
	Status             string
	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 appt.ID,
		ProfessionalID:     appt.ProfessionalID,
		PatientID:          appt.PatientID,
		Start:              appt.Interval.Start,
		End:                appt.Interval.End,
		Status:             string(appt.Status),
		Notes:              appt.Notes,
		CancellationReason: appt.CancellationReason,
		CancelledAt:        appt.CancelledAt,
		CreatedAt:          appt.CreatedAt,
		UpdatedAt:          appt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, len(appointments))
	for i, appt := range appointments {
		result[i] = FromDomainAppointment(appt)
	}
	return &AppointmentListResponse{Appointments: result}
}
