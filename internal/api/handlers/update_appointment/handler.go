package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	"github.com/m04kA/CMS-SchedulingService/internal/service/coordinator"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgAmbiguousBody        = "укажите либо новый интервал (start, end), либо новый статус (status)"
	msgInvalidDateTime      = "некорректный формат времени, ожидается RFC3339"
	msgUnknownStatus        = "неизвестный статус записи"
	msgNotFound             = "запись не найдена"
	msgSlotRejected         = "перенос на запрашиваемый слот невозможен"
	msgIllegalTransition    = "переход в указанный статус невозможен"
	msgLockTimeout          = "сервис перегружен, повторите попытку позже"
)

type Handler struct {
	coordinator BookingCoordinator
	logger      Logger
}

func NewHandler(c BookingCoordinator, logger Logger) *Handler {
	return &Handler{
		coordinator: c,
		logger:      logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
// Тело {start, end} - перенос, тело {status} - переход по жизненному циклу.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Тело должно нести ровно одно из двух: интервал или статус
	if req.IsReschedule() == req.IsStatusUpdate() {
		h.logger.Warn("PATCH /appointments/{id} - Ambiguous body: appointment_id=%d", appointmentID)
		handlers.RespondBadRequest(w, msgAmbiguousBody)
		return
	}

	if req.IsStatusUpdate() {
		h.transitionStatus(w, r, appointmentID, &req)
		return
	}
	h.reschedule(w, r, appointmentID, &req)
}

func (h *Handler) reschedule(w http.ResponseWriter, r *http.Request, appointmentID int64, req *UpdateAppointmentRequest) {
	interval, err := req.ToInterval()
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse interval: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	appt, err := h.coordinator.Reschedule(r.Context(), appointmentID, interval)
	if err != nil {
		if rejection, ok := domain.AsRejection(err); ok {
			h.logger.Warn("PATCH /appointments/{id} - Reschedule rejected: appointment_id=%d, reason=%s",
				appointmentID, rejection.Reason)
			handlers.RespondRejection(w, msgSlotRejected, rejection)
			return
		}
		h.respondError(w, appointmentID, err)
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment rescheduled: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainAppointment(appt))
}

func (h *Handler) transitionStatus(w http.ResponseWriter, r *http.Request, appointmentID int64, req *UpdateAppointmentRequest) {
	status, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Unknown status %q: appointment_id=%d", req.Status, appointmentID)
		handlers.RespondBadRequest(w, msgUnknownStatus)
		return
	}

	appt, err := h.coordinator.TransitionStatus(r.Context(), appointmentID, status)
	if err != nil {
		if rejection, ok := domain.AsRejection(err); ok {
			h.logger.Warn("PATCH /appointments/{id} - Illegal transition: appointment_id=%d, target=%s",
				appointmentID, status)
			handlers.RespondRejection(w, msgIllegalTransition, rejection)
			return
		}
		h.respondError(w, appointmentID, err)
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Status updated: appointment_id=%d, status=%s",
		appointmentID, appt.Status)
	handlers.RespondJSON(w, http.StatusOK, FromDomainAppointment(appt))
}

func (h *Handler) respondError(w http.ResponseWriter, appointmentID int64, err error) {
	switch {
	case errors.Is(err, coordinator.ErrAppointmentNotFound):
		h.logger.Warn("PATCH /appointments/{id} - Not found: appointment_id=%d", appointmentID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, coordinator.ErrLockTimeout):
		h.logger.Warn("PATCH /appointments/{id} - Lock timeout: appointment_id=%d", appointmentID)
		handlers.RespondServiceUnavailable(w, msgLockTimeout)

	default:
		h.logger.Error("PATCH /appointments/{id} - Failed: appointment_id=%d, error=%v", appointmentID, err)
		handlers.RespondInternalError(w)
	}
}
