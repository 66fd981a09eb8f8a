package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// ErrorResponse стандартное тело ошибки
type ErrorResponse struct {
	Message string `json:"message"`
}

// RejectionResponse тело ответа 409 при отказе планировщика.
// Reason стабилен и пригоден для машинной обработки клиентом.
type RejectionResponse struct {
	Message                   string               `json:"message"`
	Reason                    string               `json:"reason"`
	ConflictingAppointmentIDs []int64              `json:"conflictingAppointmentIds,omitempty"`
	Break                     *BreakWindowResponse `json:"break,omitempty"`
}

// BreakWindowResponse окно перерыва в ответе об отказе
type BreakWindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DecodeJSON декодирует тело запроса в указанную структуру
func DecodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ошибку с указанным статусом и сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

// RespondBadRequest отправляет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized отправляет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondNotFound отправляет 404 Not Found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError отправляет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// RespondServiceUnavailable отправляет 503 Service Unavailable
func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, message)
}

// RespondRejection отправляет 409 Conflict с деталями отказа планировщика
func RespondRejection(w http.ResponseWriter, message string, rejection *domain.Rejection) {
	resp := RejectionResponse{
		Message:                   message,
		Reason:                    string(rejection.Reason),
		ConflictingAppointmentIDs: rejection.ConflictingAppointmentIDs,
	}
	if rejection.Break != nil {
		resp.Break = &BreakWindowResponse{
			Start: rejection.Break.Start.String(),
			End:   rejection.Break.End.String(),
		}
	}
	RespondJSON(w, http.StatusConflict, resp)
}
