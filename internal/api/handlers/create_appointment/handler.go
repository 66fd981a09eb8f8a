package create_appointment

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
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateTime       = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInput          = "некорректные входные данные"
	msgSlotRejected          = "запрашиваемый слот недоступен"
	msgLockTimeout           = "сервис перегружен, повторите попытку позже"
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

// Handle POST /api/v1/professionals/{professionalId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/appointments - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	coordReq, err := req.ToCoordinatorRequest(professionalID)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/appointments - Failed to parse interval: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	appt, err := h.coordinator.Book(r.Context(), coordReq)
	if err != nil {
		if rejection, ok := domain.AsRejection(err); ok {
			h.logger.Warn("POST /professionals/{id}/appointments - Rejected: professional=%d, reason=%s",
				professionalID, rejection.Reason)
			handlers.RespondRejection(w, msgSlotRejected, rejection)
			return
		}

		switch {
		case errors.Is(err, coordinator.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/appointments - Invalid input: professional=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, coordinator.ErrLockTimeout):
			h.logger.Warn("POST /professionals/{id}/appointments - Lock timeout: professional=%d", professionalID)
			handlers.RespondServiceUnavailable(w, msgLockTimeout)

		default:
			h.logger.Error("POST /professionals/{id}/appointments - Failed to book: professional=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /professionals/{id}/appointments - Appointment created: appointment_id=%d, professional=%d, patient=%d",
		appt.ID, appt.ProfessionalID, appt.PatientID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainAppointment(appt))
}
