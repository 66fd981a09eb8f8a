package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// Service сервис недельных расписаний профессионалов.
// Это write-путь внешней фичи управления профессионалами: ядро
// планирования читает расписание только через календарь.
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeek получает недельное расписание профессионала.
// Пустое расписание - легитимный результат (профессионал нигде не работает).
func (s *Service) GetWeek(ctx context.Context, professionalID int64) (domain.WeeklySchedule, error) {
	s.logger.Info("GetWeek: fetching schedule for professional=%d", professionalID)

	if professionalID <= 0 {
		return nil, fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	week, err := s.scheduleRepo.GetWeek(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	return week, nil
}

// ReplaceWeek атомарно заменяет недельное расписание профессионала.
// Все инварианты расписания проверяются до записи; частичной замены не бывает.
func (s *Service) ReplaceWeek(ctx context.Context, professionalID int64, week domain.WeeklySchedule) error {
	s.logger.Info("ReplaceWeek: replacing schedule for professional=%d, working days=%d",
		professionalID, len(week))

	if professionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if err := week.Validate(); err != nil {
		s.logger.Warn("ReplaceWeek: invalid schedule for professional=%d: %v", professionalID, err)
		if errors.Is(err, domain.ErrInvalidSchedule) {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWeek(txCtx, professionalID, week)
	})
	if err != nil {
		s.logger.Error("ReplaceWeek: failed to replace schedule for professional=%d: %v", professionalID, err)
		return fmt.Errorf("%w: ReplaceWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeek: schedule replaced for professional=%d", professionalID)
	return nil
}
