package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/CMS-SchedulingService/internal/infra/storage/appointment"
)

// Coordinator сериализует все мутирующие операции календаря по профессионалу.
//
// Инвариант: "проверка, затем коммит" выполняется атомарно - под блокировкой
// профессионала никто другой не может пройти валидацию на тот же слот.
// Операции с разными профессионалами идут полностью параллельно, глобальной
// блокировки нет. Read-only пути (доступные слоты) работают без блокировки
// по снимку индекса: их устаревание разрешается обязательной повторной
// валидацией здесь, внутри критической секции.
//
// Порядок внутри критической секции: сначала коммит в хранилище (в
// сериализуемой транзакции), затем обновление индекса. Неудачный коммит
// оставляет индекс нетронутым - частичных изменений не бывает.
type Coordinator struct {
	apptRepo     AppointmentRepository
	validator    SlotValidator
	index        ConflictIndex
	locks        ProfessionalLock
	txManager    TransactionManager
	timeProvider TimeProvider
	lockTimeout  time.Duration
	metrics      Metrics
	logger       Logger
}

// New создает новый координатор бронирования
func New(
	apptRepo AppointmentRepository,
	validator SlotValidator,
	index ConflictIndex,
	locks ProfessionalLock,
	txManager TransactionManager,
	lockTimeout time.Duration,
	m Metrics,
	logger Logger,
) *Coordinator {
	if m == nil {
		m = noopMetrics{}
	}
	return &Coordinator{
		apptRepo:     apptRepo,
		validator:    validator,
		index:        index,
		locks:        locks,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		lockTimeout:  lockTimeout,
		metrics:      m,
		logger:       logger,
	}
}

// WarmUp загружает в конфликтный индекс интервалы всех записей
// в занимающих статусах. Вызывается один раз при старте сервиса.
func (c *Coordinator) WarmUp(ctx context.Context) error {
	appointments, err := c.apptRepo.ListOccupying(ctx)
	if err != nil {
		c.logger.Error("WarmUp: failed to list occupying appointments: %v", err)
		return fmt.Errorf("%w: failed to warm up conflict index: %v", ErrInternal, err)
	}

	for _, appt := range appointments {
		c.index.Insert(appt.ProfessionalID, appt.ID, appt.Interval)
	}

	c.metrics.SetConflictIndexSize(c.index.Size())
	c.logger.Info("WarmUp: conflict index loaded with %d occupying appointments", len(appointments))
	return nil
}

// Book создает запись, если интервал проходит валидацию.
// Отказ возвращается как *domain.Rejection в цепочке ошибки.
func (c *Coordinator) Book(ctx context.Context, req *BookRequest) (*domain.Appointment, error) {
	c.logger.Info("Book: professional=%d, patient=%d, interval=%s - %s",
		req.ProfessionalID, req.PatientID,
		req.Interval.Start.Format(time.RFC3339), req.Interval.End.Format(time.RFC3339))

	if err := validateBookRequest(req); err != nil {
		c.logger.Warn("Book: validation failed: %v", err)
		return nil, err
	}

	now := c.timeProvider.Now()

	if err := c.acquire(ctx, "book", req.ProfessionalID); err != nil {
		return nil, err
	}
	defer c.locks.Unlock(req.ProfessionalID)

	// Повторная валидация под блокировкой: результат read-only путей
	// к этому моменту мог устареть
	rejection, err := c.validator.Validate(ctx, req.ProfessionalID, req.Interval, now, 0)
	if err != nil {
		c.metrics.ObserveOutcome("book", "error")
		return nil, fmt.Errorf("%w: validation failed: %v", ErrInternal, err)
	}
	if rejection != nil {
		c.logger.Warn("Book: rejected for professional=%d: %v", req.ProfessionalID, rejection)
		c.metrics.ObserveOutcome("book", string(rejection.Reason))
		return nil, rejection
	}

	var created *domain.Appointment
	err = c.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt := &domain.Appointment{
			ProfessionalID: req.ProfessionalID,
			PatientID:      req.PatientID,
			Interval:       req.Interval,
			Status:         domain.StatusScheduled,
			Notes:          req.Notes,
		}

		var createErr error
		created, createErr = c.apptRepo.Create(txCtx, appt)
		return createErr
	})
	if err != nil {
		c.logger.Error("Book: failed to create appointment: %v", err)
		c.metrics.ObserveOutcome("book", "error")
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	c.index.Insert(created.ProfessionalID, created.ID, created.Interval)
	c.metrics.SetConflictIndexSize(c.index.Size())
	c.metrics.ObserveOutcome("book", "success")

	c.logger.Info("Book: created appointment id=%d for professional=%d", created.ID, created.ProfessionalID)
	return created, nil
}

// Reschedule переносит запись на новый интервал.
// Собственный прежний интервал записи при проверке конфликтов игнорируется.
func (c *Coordinator) Reschedule(ctx context.Context, appointmentID int64, newInterval domain.TimeRange) (*domain.Appointment, error) {
	c.logger.Info("Reschedule: appointment=%d, interval=%s - %s",
		appointmentID, newInterval.Start.Format(time.RFC3339), newInterval.End.Format(time.RFC3339))

	// Первое чтение вне блокировки - только чтобы узнать профессионала
	professionalID, err := c.professionalOf(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := c.timeProvider.Now()

	if err := c.acquire(ctx, "reschedule", professionalID); err != nil {
		return nil, err
	}
	defer c.locks.Unlock(professionalID)

	var updated *domain.Appointment
	err = c.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повторное чтение под блокировкой: статус мог измениться
		appt, err := c.getAppointment(txCtx, appointmentID)
		if err != nil {
			return err
		}

		if !appt.CanBeRescheduled() {
			c.logger.Warn("Reschedule: appointment=%d in status=%s cannot be rescheduled", appointmentID, appt.Status)
			return domain.Reject(domain.ReasonInvalidStatusTransition)
		}

		rejection, err := c.validator.Validate(txCtx, professionalID, newInterval, now, appointmentID)
		if err != nil {
			return fmt.Errorf("%w: validation failed: %v", ErrInternal, err)
		}
		if rejection != nil {
			return rejection
		}

		if err := c.apptRepo.UpdateInterval(txCtx, appointmentID, newInterval); err != nil {
			return fmt.Errorf("%w: failed to update interval: %v", ErrInternal, err)
		}

		appt.Interval = newInterval
		updated = appt
		return nil
	})
	if err != nil {
		return nil, c.observeMutationError("reschedule", appointmentID, err)
	}

	c.index.Update(professionalID, appointmentID, newInterval)
	c.metrics.ObserveOutcome("reschedule", "success")

	c.logger.Info("Reschedule: appointment=%d moved for professional=%d", appointmentID, professionalID)
	return updated, nil
}

// Cancel отменяет запись с указанием причины и освобождает её интервал
func (c *Coordinator) Cancel(ctx context.Context, appointmentID int64, reason *string) (*domain.Appointment, error) {
	c.logger.Info("Cancel: appointment=%d", appointmentID)

	if err := validateReason(reason); err != nil {
		return nil, err
	}

	professionalID, err := c.professionalOf(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := c.acquire(ctx, "cancel", professionalID); err != nil {
		return nil, err
	}
	defer c.locks.Unlock(professionalID)

	var cancelled *domain.Appointment
	err = c.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := c.getAppointment(txCtx, appointmentID)
		if err != nil {
			return err
		}

		if !appt.CanBeCancelled() {
			c.logger.Warn("Cancel: appointment=%d in status=%s cannot be cancelled", appointmentID, appt.Status)
			return domain.Reject(domain.ReasonInvalidStatusTransition)
		}

		if err := c.apptRepo.Cancel(txCtx, appointmentID, reason); err != nil {
			return fmt.Errorf("%w: failed to cancel: %v", ErrInternal, err)
		}

		// Перечитываем, чтобы вернуть проставленные БД cancelled_at/updated_at
		cancelled, err = c.getAppointment(txCtx, appointmentID)
		return err
	})
	if err != nil {
		return nil, c.observeMutationError("cancel", appointmentID, err)
	}

	c.index.Remove(professionalID, appointmentID)
	c.metrics.SetConflictIndexSize(c.index.Size())
	c.metrics.ObserveOutcome("cancel", "success")

	c.logger.Info("Cancel: appointment=%d cancelled, slot released for professional=%d", appointmentID, professionalID)
	return cancelled, nil
}

// TransitionStatus переводит запись в новый статус по правилам жизненного
// цикла. Переход в терминальный статус освобождает интервал записи.
func (c *Coordinator) TransitionStatus(ctx context.Context, appointmentID int64, newStatus domain.AppointmentStatus) (*domain.Appointment, error) {
	c.logger.Info("TransitionStatus: appointment=%d -> %s", appointmentID, newStatus)

	professionalID, err := c.professionalOf(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := c.acquire(ctx, "transition", professionalID); err != nil {
		return nil, err
	}
	defer c.locks.Unlock(professionalID)

	var updated *domain.Appointment
	err = c.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := c.getAppointment(txCtx, appointmentID)
		if err != nil {
			return err
		}

		if !domain.CanTransition(appt.Status, newStatus) {
			c.logger.Warn("TransitionStatus: illegal transition %s -> %s for appointment=%d",
				appt.Status, newStatus, appointmentID)
			return domain.Reject(domain.ReasonInvalidStatusTransition)
		}

		if err := c.apptRepo.UpdateStatus(txCtx, appointmentID, newStatus); err != nil {
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		appt.Status = newStatus
		updated = appt
		return nil
	})
	if err != nil {
		return nil, c.observeMutationError("transition", appointmentID, err)
	}

	// Терминальный статус освобождает слот для повторного бронирования
	if !newStatus.IsOccupying() {
		c.index.Remove(professionalID, appointmentID)
		c.metrics.SetConflictIndexSize(c.index.Size())
	}
	c.metrics.ObserveOutcome("transition", "success")

	c.logger.Info("TransitionStatus: appointment=%d now %s", appointmentID, newStatus)
	return updated, nil
}

// acquire захватывает блокировку профессионала с таймаутом.
// Единственная точка ожидания: сама критическая секция короткая и
// ограниченная, внутри нее отмена не проверяется.
func (c *Coordinator) acquire(ctx context.Context, operation string, professionalID int64) error {
	lockCtx := ctx
	if c.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, c.lockTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := c.locks.Lock(lockCtx, professionalID); err != nil {
		c.logger.Warn("acquire: %s abandoned waiting for professional=%d lock: %v", operation, professionalID, err)
		c.metrics.ObserveOutcome(operation, "lock_timeout")
		return fmt.Errorf("%w: professional=%d: %v", ErrLockTimeout, professionalID, err)
	}
	c.metrics.ObserveLockWait(operation, time.Since(start).Seconds())
	return nil
}

// professionalOf возвращает ID профессионала записи
func (c *Coordinator) professionalOf(ctx context.Context, appointmentID int64) (int64, error) {
	appt, err := c.getAppointment(ctx, appointmentID)
	if err != nil {
		return 0, err
	}
	return appt.ProfessionalID, nil
}

// getAppointment получает запись, транслируя ошибку репозитория
func (c *Coordinator) getAppointment(ctx context.Context, appointmentID int64) (*domain.Appointment, error) {
	appt, err := c.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: failed to get appointment id=%d: %v", ErrInternal, appointmentID, err)
	}
	return appt, nil
}

// observeMutationError записывает метрику исхода и возвращает ошибку как есть
func (c *Coordinator) observeMutationError(operation string, appointmentID int64, err error) error {
	if rejection, ok := domain.AsRejection(err); ok {
		c.metrics.ObserveOutcome(operation, string(rejection.Reason))
		return err
	}
	if errors.Is(err, ErrAppointmentNotFound) {
		c.metrics.ObserveOutcome(operation, "not_found")
		return err
	}
	c.logger.Error("%s: appointment=%d failed: %v", operation, appointmentID, err)
	c.metrics.ObserveOutcome(operation, "error")
	return err
}

// validateBookRequest валидирует входные данные запроса на бронирование
func validateBookRequest(req *BookRequest) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}
	if req.Interval.Start.IsZero() || req.Interval.End.IsZero() {
		return fmt.Errorf("%w: interval is required", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// validateReason валидирует причину отмены
func validateReason(reason *string) error {
	if reason != nil && len(*reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}
