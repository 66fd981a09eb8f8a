package coordinator

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("coordinator: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("coordinator: invalid input data")

	// ErrLockTimeout возвращается, когда запрос не дождался блокировки
	// профессионала. Запрос прерван без побочных эффектов.
	ErrLockTimeout = errors.New("coordinator: timed out waiting for professional lock")

	// ErrInternal возвращается при инфраструктурных ошибках
	ErrInternal = errors.New("coordinator: internal error")
)
