package cancel_appointment

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
	msgInvalidInput         = "некорректные входные данные"
	msgNotFound             = "запись не найдена"
	msgCannotCancel         = "запись в текущем статусе нельзя отменить"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Тело опционально: отмена без причины допустима
	var req CancelAppointmentRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	appt, err := h.coordinator.Cancel(r.Context(), appointmentID, req.Reason)
	if err != nil {
		if rejection, ok := domain.AsRejection(err); ok {
			h.logger.Warn("PATCH /appointments/{id}/cancel - Cannot cancel: appointment_id=%d, reason=%s",
				appointmentID, rejection.Reason)
			handlers.RespondRejection(w, msgCannotCancel, rejection)
			return
		}

		switch {
		case errors.Is(err, coordinator.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, coordinator.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, coordinator.ErrLockTimeout):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Lock timeout: appointment_id=%d", appointmentID)
			handlers.RespondServiceUnavailable(w, msgLockTimeout)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainAppointment(appt))
}
