package get_available_slots

import (
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProfessionalID     int64     // ID профессионала
	Date               time.Time // Дата для получения слотов (без времени)
	DurationMinutes    int       // Длительность записи в минутах
	GranularityMinutes int       // Шаг начала слотов; 0 - значение по умолчанию (30)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date           time.Time          // Дата, на которую запрашивались слоты
	ProfessionalID int64              // ID профессионала
	Slots          []domain.TimeRange // Доступные интервалы в порядке возрастания начала
}
