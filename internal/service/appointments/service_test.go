package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/CMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/CMS-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/CMS-SchedulingService/pkg/ptr"
)

type fakeRepo struct {
	byID       map[int64]*domain.Appointment
	lastFilter domain.AppointmentFilter
	listResult []*domain.Appointment
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.byID[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (r *fakeRepo) ListByProfessional(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	r.lastFilter = filter
	return r.listResult, nil
}

func (r *fakeRepo) ListByPatient(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return r.listResult, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleAppointment() *domain.Appointment {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:             1,
		ProfessionalID: 7,
		PatientID:      42,
		Interval:       domain.TimeRange{Start: start, End: start.Add(time.Hour)},
		Status:         domain.StatusScheduled,
	}
}

func TestGetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*domain.Appointment{1: sampleAppointment()}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, int64(7), resp.ProfessionalID)
		assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	})

	t.Run("Not Found", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*domain.Appointment{}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestGetProfessionalAppointments(t *testing.T) {
	t.Run("Filter Passed Through", func(t *testing.T) {
		repo := &fakeRepo{listResult: []*domain.Appointment{sampleAppointment()}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.GetProfessionalAppointments(context.Background(), &models.GetProfessionalAppointmentsRequest{
			ProfessionalID:  7,
			Status:          ptr.Ptr("scheduled"),
			IncludeInactive: true,
		})

		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 1)
		assert.Equal(t, int64(7), repo.lastFilter.ProfessionalID)
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusScheduled, *repo.lastFilter.Status)
		assert.True(t, repo.lastFilter.IncludeInactive)
	})

	t.Run("Invalid Status", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, nopLogger{})

		_, err := svc.GetProfessionalAppointments(context.Background(), &models.GetProfessionalAppointmentsRequest{
			ProfessionalID: 7,
			Status:         ptr.Ptr("postponed"),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetPatientAppointments(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := &fakeRepo{listResult: []*domain.Appointment{sampleAppointment()}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
			PatientID: 42,
		})

		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 1)
		assert.Equal(t, int64(42), resp.Appointments[0].PatientID)
	})

	t.Run("Invalid Status", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, nopLogger{})

		_, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
			PatientID: 42,
			Status:    ptr.Ptr("nope"),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
