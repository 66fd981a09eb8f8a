package create_appointment

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
	"github.com/m04kA/CMS-SchedulingService/internal/service/coordinator"
)

type fakeCoordinator struct {
	lastReq *coordinator.BookRequest
	err     error
}

func (c *fakeCoordinator) Book(_ context.Context, req *coordinator.BookRequest) (*domain.Appointment, error) {
	c.lastReq = req
	if c.err != nil {
		return nil, c.err
	}
	return &domain.Appointment{
		ID:             1,
		ProfessionalID: req.ProfessionalID,
		PatientID:      req.PatientID,
		Interval:       req.Interval,
		Status:         domain.StatusScheduled,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(h *Handler, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/professionals/{professionalId}/appointments", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("Professional ID Taken From Path", func(t *testing.T) {
		coord := &fakeCoordinator{}
		h := NewHandler(coord, nopLogger{})

		rec := doRequest(h, "/api/v1/professionals/7/appointments",
			`{"patientId":42,"start":"2026-09-01T10:00:00Z","end":"2026-09-01T11:00:00Z"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, coord.lastReq)
		assert.Equal(t, int64(7), coord.lastReq.ProfessionalID)
		assert.Equal(t, int64(42), coord.lastReq.PatientID)
		assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), coord.lastReq.Interval.Start)
	})

	t.Run("Invalid Professional ID", func(t *testing.T) {
		coord := &fakeCoordinator{}
		h := NewHandler(coord, nopLogger{})

		rec := doRequest(h, "/api/v1/professionals/abc/appointments",
			`{"patientId":42,"start":"2026-09-01T10:00:00Z","end":"2026-09-01T11:00:00Z"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, coord.lastReq)
	})

	t.Run("Rejection Maps To Conflict", func(t *testing.T) {
		coord := &fakeCoordinator{err: domain.Reject(domain.ReasonPastDateTime)}
		h := NewHandler(coord, nopLogger{})

		rec := doRequest(h, "/api/v1/professionals/7/appointments",
			`{"patientId":42,"start":"2020-01-01T10:00:00Z","end":"2020-01-01T11:00:00Z"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "past_date_time")
	})
}
