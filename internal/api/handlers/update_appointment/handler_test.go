package update_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// fakeCoordinator фиксирует, какой из методов был вызван
type fakeCoordinator struct {
	rescheduledID       int64
	rescheduleInterval  domain.TimeRange
	transitionedID      int64
	transitionStatus    domain.AppointmentStatus
	rescheduleCalls     int
	transitionCalls     int
	rescheduleErr       error
	transitionStatusErr error
}

func (c *fakeCoordinator) sample(id int64) *domain.Appointment {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:             id,
		ProfessionalID: 7,
		PatientID:      42,
		Interval:       domain.TimeRange{Start: start, End: start.Add(time.Hour)},
		Status:         domain.StatusScheduled,
	}
}

func (c *fakeCoordinator) Reschedule(_ context.Context, id int64, interval domain.TimeRange) (*domain.Appointment, error) {
	c.rescheduleCalls++
	c.rescheduledID = id
	c.rescheduleInterval = interval
	if c.rescheduleErr != nil {
		return nil, c.rescheduleErr
	}
	appt := c.sample(id)
	appt.Interval = interval
	return appt, nil
}

func (c *fakeCoordinator) TransitionStatus(_ context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	c.transitionCalls++
	c.transitionedID = id
	c.transitionStatus = status
	if c.transitionStatusErr != nil {
		return nil, c.transitionStatusErr
	}
	appt := c.sample(id)
	appt.Status = status
	return appt, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{appointmentId}", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/5", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("Interval Body Dispatches To Reschedule", func(t *testing.T) {
		coord := &fakeCoordinator{}
		h := NewHandler(coord, nopLogger{})

		rec := doRequest(h, `{"start":"2026-09-01T14:00:00Z","end":"2026-09-01T15:00:00Z"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, coord.rescheduleCalls)
		assert.Zero(t, coord.transitionCalls)
		assert.Equal(t, int64(5), coord.rescheduledID)
		assert.Equal(t, time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC), coord.rescheduleInterval.Start)
	})

	t.Run("Status Body Dispatches To Transition", func(t *testing.T) {
		coord := &fakeCoordinator{}
		h := NewHandler(coord, nopLogger{})

		rec := doRequest(h, `{"status":"confirmed"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, coord.transitionCalls)
		assert.Zero(t, coord.rescheduleCalls)
		assert.Equal(t, int64(5), coord.transitionedID)
		assert.Equal(t, domain.StatusConfirmed, coord.transitionStatus)
	})

	t.Run("Body With Both Interval And Status Rejected", func(t *testing.T) {
		coord := &fakeCoordinator{}
		h := NewHandler(coord, nopLogger{})

		rec := doRequest(h, `{"start":"2026-09-01T14:00:00Z","end":"2026-09-01T15:00:00Z","status":"confirmed"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, coord.rescheduleCalls)
		assert.Zero(t, coord.transitionCalls)
	})

	t.Run("Empty Body Rejected", func(t *testing.T) {
		coord := &fakeCoordinator{}
		h := NewHandler(coord, nopLogger{})

		rec := doRequest(h, `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown Status Rejected", func(t *testing.T) {
		coord := &fakeCoordinator{}
		h := NewHandler(coord, nopLogger{})

		rec := doRequest(h, `{"status":"postponed"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, coord.transitionCalls)
	})

	t.Run("Rejection Maps To Conflict", func(t *testing.T) {
		coord := &fakeCoordinator{rescheduleErr: domain.RejectDoubleBooking([]int64{9})}
		h := NewHandler(coord, nopLogger{})

		rec := doRequest(h, `{"start":"2026-09-01T14:00:00Z","end":"2026-09-01T15:00:00Z"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), "double_booking")
		assert.Contains(t, rec.Body.String(), "9")
	})
}
