package coordinator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/CMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/CMS-SchedulingService/internal/service/conflictindex"
	"github.com/m04kA/CMS-SchedulingService/internal/service/slotvalidator"
	"github.com/m04kA/CMS-SchedulingService/pkg/keylock"
	"github.com/m04kA/CMS-SchedulingService/pkg/ptr"
	"github.com/m04kA/CMS-SchedulingService/pkg/types"
)

// fakeAppointmentRepo in-memory репозиторий записей
type fakeAppointmentRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		nextID: 1,
		byID:   make(map[int64]*domain.Appointment),
	}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *appt
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.byID[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	result := *stored
	return &result, nil
}

func (r *fakeAppointmentRepo) UpdateInterval(_ context.Context, id int64, interval domain.TimeRange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	stored.Interval = interval
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	stored.Status = status
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeAppointmentRepo) Cancel(_ context.Context, id int64, reason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	now := time.Now()
	stored.Status = domain.StatusCancelled
	stored.CancellationReason = reason
	stored.CancelledAt = &now
	stored.UpdatedAt = now
	return nil
}

func (r *fakeAppointmentRepo) ListOccupying(_ context.Context) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Appointment
	for _, stored := range r.byID {
		if stored.IsOccupying() {
			appt := *stored
			result = append(result, &appt)
		}
	}
	return result, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeCalendar календарь с фиксированной неделей
type fakeCalendar struct {
	week domain.WeeklySchedule
}

func (c *fakeCalendar) ScheduleFor(_ context.Context, _ int64, weekday time.Weekday) (*domain.DaySchedule, error) {
	return c.week[weekday], nil
}

// fixedTime провайдер фиксированного времени
type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-09-01 - вторник
var tuesday = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return tuesday.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func tod(t *testing.T, s string) types.TimeOfDay {
	t.Helper()
	parsed, err := types.ParseTimeOfDay(s)
	require.NoError(t, err)
	return parsed
}

type fixture struct {
	coordinator *Coordinator
	repo        *fakeAppointmentRepo
	index       *conflictindex.Index
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	week := domain.WeeklySchedule{
		time.Tuesday: {Start: tod(t, "09:00"), End: tod(t, "18:00")},
	}

	repo := newFakeAppointmentRepo()
	index := conflictindex.New()
	validator := slotvalidator.New(&fakeCalendar{week: week}, index, nopLogger{})

	c := New(repo, validator, index, keylock.New(), fakeTxManager{}, time.Second, nil, nopLogger{})
	c.timeProvider = &fixedTime{now: at(8, 0)}

	return &fixture{coordinator: c, repo: repo, index: index}
}

func (f *fixture) book(t *testing.T, startHour, endHour int) *domain.Appointment {
	t.Helper()
	appt, err := f.coordinator.Book(context.Background(), &BookRequest{
		ProfessionalID: 1,
		PatientID:      10,
		Interval:       domain.TimeRange{Start: at(startHour, 0), End: at(endHour, 0)},
	})
	require.NoError(t, err)
	return appt
}

func TestBook(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)

		appt := f.book(t, 10, 11)

		assert.Equal(t, domain.StatusScheduled, appt.Status)
		assert.NotZero(t, appt.ID)
		assert.Equal(t, 1, f.index.Size())
	})

	t.Run("Double Booking Rejected", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, 10, 11)

		_, err := f.coordinator.Book(context.Background(), &BookRequest{
			ProfessionalID: 1,
			PatientID:      20,
			Interval:       domain.TimeRange{Start: at(10, 30), End: at(11, 30)},
		})

		rejection, ok := domain.AsRejection(err)
		require.True(t, ok, "expected a rejection, got %v", err)
		assert.Equal(t, domain.ReasonDoubleBooking, rejection.Reason)
		assert.Equal(t, 1, f.index.Size())
	})

	t.Run("Back To Back Allowed", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, 10, 11)
		f.book(t, 11, 12)

		assert.Equal(t, 2, f.index.Size())
	})

	t.Run("Invalid Input", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.coordinator.Book(context.Background(), &BookRequest{
			ProfessionalID: 0,
			PatientID:      10,
			Interval:       domain.TimeRange{Start: at(10, 0), End: at(11, 0)},
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Concurrent Requests For Same Slot", func(t *testing.T) {
		f := newFixture(t)

		const attempts = 10
		interval := domain.TimeRange{Start: at(10, 0), End: at(11, 0)}

		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				_, err := f.coordinator.Book(context.Background(), &BookRequest{
					ProfessionalID: 1,
					PatientID:      int64(100 + i),
					Interval:       interval,
				})
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		successes, rejections := 0, 0
		for err := range results {
			if err == nil {
				successes++
				continue
			}
			rejection, ok := domain.AsRejection(err)
			require.True(t, ok, "unexpected error: %v", err)
			assert.Equal(t, domain.ReasonDoubleBooking, rejection.Reason)
			rejections++
		}

		assert.Equal(t, 1, successes, "exactly one request must win the slot")
		assert.Equal(t, attempts-1, rejections)
		assert.Equal(t, 1, f.index.Size())
	})
}

func TestReschedule(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		appt := f.book(t, 10, 11)

		updated, err := f.coordinator.Reschedule(context.Background(), appt.ID,
			domain.TimeRange{Start: at(14, 0), End: at(15, 0)})

		require.NoError(t, err)
		assert.Equal(t, at(14, 0), updated.Interval.Start)

		// Прежний интервал освобожден
		f.book(t, 10, 11)
	})

	t.Run("Own Interval Ignored", func(t *testing.T) {
		f := newFixture(t)
		appt := f.book(t, 10, 11)

		// Сдвиг на полчаса пересекается с собственным прежним интервалом
		_, err := f.coordinator.Reschedule(context.Background(), appt.ID,
			domain.TimeRange{Start: at(10, 30), End: at(11, 30)})

		assert.NoError(t, err)
	})

	t.Run("Conflict With Another Appointment", func(t *testing.T) {
		f := newFixture(t)
		appt := f.book(t, 10, 11)
		other := f.book(t, 14, 15)

		_, err := f.coordinator.Reschedule(context.Background(), appt.ID,
			domain.TimeRange{Start: at(14, 30), End: at(15, 30)})

		rejection, ok := domain.AsRejection(err)
		require.True(t, ok, "expected a rejection, got %v", err)
		assert.Equal(t, domain.ReasonDoubleBooking, rejection.Reason)
		assert.Equal(t, []int64{other.ID}, rejection.ConflictingAppointmentIDs)

		// Неудачный перенос не трогает ни хранилище, ни индекс
		stored, err := f.repo.GetByID(context.Background(), appt.ID)
		require.NoError(t, err)
		assert.Equal(t, at(10, 0), stored.Interval.Start)
	})

	t.Run("Terminal Status Not Reschedulable", func(t *testing.T) {
		f := newFixture(t)
		appt := f.book(t, 10, 11)

		_, err := f.coordinator.Cancel(context.Background(), appt.ID, nil)
		require.NoError(t, err)

		_, err = f.coordinator.Reschedule(context.Background(), appt.ID,
			domain.TimeRange{Start: at(14, 0), End: at(15, 0)})

		rejection, ok := domain.AsRejection(err)
		require.True(t, ok, "expected a rejection, got %v", err)
		assert.Equal(t, domain.ReasonInvalidStatusTransition, rejection.Reason)
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.coordinator.Reschedule(context.Background(), 999,
			domain.TimeRange{Start: at(14, 0), End: at(15, 0)})

		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("Releases Slot", func(t *testing.T) {
		f := newFixture(t)
		appt := f.book(t, 10, 11)

		cancelled, err := f.coordinator.Cancel(context.Background(), appt.ID, ptr.Ptr("пациент заболел"))

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancellationReason)
		assert.Equal(t, "пациент заболел", *cancelled.CancellationReason)
		assert.NotNil(t, cancelled.CancelledAt)
		assert.Equal(t, 0, f.index.Size())

		// Слот снова доступен
		f.book(t, 10, 11)
	})

	t.Run("Completed Cannot Be Cancelled", func(t *testing.T) {
		f := newFixture(t)
		appt := f.book(t, 10, 11)

		_, err := f.coordinator.TransitionStatus(context.Background(), appt.ID, domain.StatusConfirmed)
		require.NoError(t, err)
		_, err = f.coordinator.TransitionStatus(context.Background(), appt.ID, domain.StatusInProgress)
		require.NoError(t, err)
		_, err = f.coordinator.TransitionStatus(context.Background(), appt.ID, domain.StatusCompleted)
		require.NoError(t, err)

		_, err = f.coordinator.Cancel(context.Background(), appt.ID, nil)

		rejection, ok := domain.AsRejection(err)
		require.True(t, ok, "expected a rejection, got %v", err)
		assert.Equal(t, domain.ReasonInvalidStatusTransition, rejection.Reason)
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.coordinator.Cancel(context.Background(), 999, nil)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestTransitionStatus(t *testing.T) {
	t.Run("Happy Path Keeps Slot Until Terminal", func(t *testing.T) {
		f := newFixture(t)
		appt := f.book(t, 10, 11)

		updated, err := f.coordinator.TransitionStatus(context.Background(), appt.ID, domain.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, updated.Status)
		assert.Equal(t, 1, f.index.Size())

		updated, err = f.coordinator.TransitionStatus(context.Background(), appt.ID, domain.StatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, updated.Status)
		assert.Equal(t, 1, f.index.Size())

		updated, err = f.coordinator.TransitionStatus(context.Background(), appt.ID, domain.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, updated.Status)
		assert.Equal(t, 0, f.index.Size(), "terminal status must release the interval")
	})

	t.Run("Illegal Transition", func(t *testing.T) {
		f := newFixture(t)
		appt := f.book(t, 10, 11)

		_, err := f.coordinator.TransitionStatus(context.Background(), appt.ID, domain.StatusCompleted)

		rejection, ok := domain.AsRejection(err)
		require.True(t, ok, "expected a rejection, got %v", err)
		assert.Equal(t, domain.ReasonInvalidStatusTransition, rejection.Reason)

		// Статус не изменился
		stored, err := f.repo.GetByID(context.Background(), appt.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusScheduled, stored.Status)
	})

	t.Run("No Show Releases Slot", func(t *testing.T) {
		f := newFixture(t)
		appt := f.book(t, 10, 11)

		_, err := f.coordinator.TransitionStatus(context.Background(), appt.ID, domain.StatusNoShow)
		require.NoError(t, err)
		assert.Equal(t, 0, f.index.Size())
	})
}

func TestWarmUp(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, 10, 11)
	f.book(t, 14, 15)

	cancelledAppt := f.book(t, 16, 17)
	_, err := f.coordinator.Cancel(context.Background(), cancelledAppt.ID, nil)
	require.NoError(t, err)

	// Свежий координатор с пустым индексом поверх того же хранилища
	rebuilt := conflictindex.New()
	week := domain.WeeklySchedule{
		time.Tuesday: {Start: tod(t, "09:00"), End: tod(t, "18:00")},
	}
	validator := slotvalidator.New(&fakeCalendar{week: week}, rebuilt, nopLogger{})
	c := New(f.repo, validator, rebuilt, keylock.New(), fakeTxManager{}, time.Second, nil, nopLogger{})

	require.NoError(t, c.WarmUp(context.Background()))

	assert.Equal(t, 2, rebuilt.Size(), "only occupying appointments are loaded")
	assert.Equal(t, []int64{appt.ID}, rebuilt.Overlaps(1, domain.TimeRange{Start: at(10, 0), End: at(11, 0)}, 0))
	assert.Empty(t, rebuilt.Overlaps(1, domain.TimeRange{Start: at(16, 0), End: at(17, 0)}, 0))
}
