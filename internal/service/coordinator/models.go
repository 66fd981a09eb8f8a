package coordinator

import "github.com/m04kA/CMS-SchedulingService/internal/domain"

// BookRequest запрос на создание записи
type BookRequest struct {
	ProfessionalID int64            // ID профессионала
	PatientID      int64            // ID пациента
	Interval       domain.TimeRange // Запрашиваемый интервал
	Notes          *string          // Заметки (опционально)
}

// noopMetrics заглушка метрик, когда сбор выключен
type noopMetrics struct{}

func (noopMetrics) ObserveOutcome(string, string)   {}
func (noopMetrics) ObserveLockWait(string, float64) {}
func (noopMetrics) SetConflictIndexSize(int)        {}
