package slotvalidator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	"github.com/m04kA/CMS-SchedulingService/internal/service/conflictindex"
	"github.com/m04kA/CMS-SchedulingService/pkg/types"
)

type fakeCalendar struct {
	week domain.WeeklySchedule
	err  error
}

func (c *fakeCalendar) ScheduleFor(_ context.Context, _ int64, weekday time.Weekday) (*domain.DaySchedule, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.week[weekday], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func tod(t *testing.T, s string) types.TimeOfDay {
	t.Helper()
	parsed, err := types.ParseTimeOfDay(s)
	require.NoError(t, err)
	return parsed
}

// 2026-09-01 - вторник
var tuesday = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func workingWeek(t *testing.T) domain.WeeklySchedule {
	t.Helper()
	return domain.WeeklySchedule{
		time.Tuesday: {
			Start: tod(t, "09:00"),
			End:   tod(t, "18:00"),
			Breaks: []domain.BreakWindow{
				{Start: tod(t, "13:00"), End: tod(t, "14:00")},
			},
		},
	}
}

func newValidator(t *testing.T, week domain.WeeklySchedule, index ConflictIndex) *Validator {
	t.Helper()
	if index == nil {
		index = conflictindex.New()
	}
	return New(&fakeCalendar{week: week}, index, nopLogger{})
}

func TestValidateBookable(t *testing.T) {
	v := newValidator(t, workingWeek(t), nil)
	now := at(tuesday, 8, 0)

	rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
		Start: at(tuesday, 10, 0),
		End:   at(tuesday, 11, 0),
	}, now, 0)

	require.NoError(t, err)
	assert.Nil(t, rejection)
}

func TestValidateInvalidRange(t *testing.T) {
	v := newValidator(t, workingWeek(t), nil)
	now := at(tuesday, 8, 0)

	rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
		Start: at(tuesday, 11, 0),
		End:   at(tuesday, 10, 0),
	}, now, 0)

	require.NoError(t, err)
	require.NotNil(t, rejection)
	assert.Equal(t, domain.ReasonInvalidRange, rejection.Reason)
}

func TestValidatePastDateTime(t *testing.T) {
	v := newValidator(t, workingWeek(t), nil)
	now := at(tuesday, 12, 0)

	rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
		Start: at(tuesday, 10, 0),
		End:   at(tuesday, 11, 0),
	}, now, 0)

	require.NoError(t, err)
	require.NotNil(t, rejection)
	assert.Equal(t, domain.ReasonPastDateTime, rejection.Reason)
}

func TestValidateProfessionalNotWorking(t *testing.T) {
	// Пустая неделя: профессионал нигде не работает
	v := newValidator(t, domain.WeeklySchedule{}, nil)
	now := at(tuesday, 8, 0)

	rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
		Start: at(tuesday, 10, 0),
		End:   at(tuesday, 11, 0),
	}, now, 0)

	require.NoError(t, err)
	require.NotNil(t, rejection)
	assert.Equal(t, domain.ReasonProfessionalNotWorking, rejection.Reason)
}

func TestValidateOutsideWorkingHours(t *testing.T) {
	v := newValidator(t, workingWeek(t), nil)
	now := at(tuesday, 7, 0)

	t.Run("Before Opening", func(t *testing.T) {
		rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
			Start: at(tuesday, 8, 0),
			End:   at(tuesday, 9, 30),
		}, now, 0)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, domain.ReasonOutsideWorkingHours, rejection.Reason)
	})

	t.Run("Past Closing", func(t *testing.T) {
		rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
			Start: at(tuesday, 17, 30),
			End:   at(tuesday, 18, 30),
		}, now, 0)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, domain.ReasonOutsideWorkingHours, rejection.Reason)
	})

	t.Run("Crosses Midnight", func(t *testing.T) {
		rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
			Start: at(tuesday, 17, 0),
			End:   at(tuesday, 24, 30),
		}, now, 0)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, domain.ReasonOutsideWorkingHours, rejection.Reason)
	})
}

func TestValidateBreakConflict(t *testing.T) {
	v := newValidator(t, workingWeek(t), nil)
	now := at(tuesday, 8, 0)

	rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
		Start: at(tuesday, 13, 30),
		End:   at(tuesday, 14, 30),
	}, now, 0)

	require.NoError(t, err)
	require.NotNil(t, rejection)
	assert.Equal(t, domain.ReasonBreakConflict, rejection.Reason)
	require.NotNil(t, rejection.Break)
	assert.Equal(t, "13:00", rejection.Break.Start.String())
	assert.Equal(t, "14:00", rejection.Break.End.String())
}

func TestValidateDoubleBooking(t *testing.T) {
	index := conflictindex.New()
	index.Insert(1, 100, domain.TimeRange{Start: at(tuesday, 10, 0), End: at(tuesday, 11, 0)})

	v := newValidator(t, workingWeek(t), index)
	now := at(tuesday, 8, 0)

	t.Run("Overlapping Interval", func(t *testing.T) {
		rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
			Start: at(tuesday, 10, 30),
			End:   at(tuesday, 11, 30),
		}, now, 0)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, domain.ReasonDoubleBooking, rejection.Reason)
		assert.Equal(t, []int64{100}, rejection.ConflictingAppointmentIDs)
	})

	t.Run("Back To Back Is Bookable", func(t *testing.T) {
		rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
			Start: at(tuesday, 11, 0),
			End:   at(tuesday, 12, 0),
		}, now, 0)

		require.NoError(t, err)
		assert.Nil(t, rejection)
	})

	t.Run("Exclude Own Interval", func(t *testing.T) {
		rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
			Start: at(tuesday, 10, 0),
			End:   at(tuesday, 11, 0),
		}, now, 100)

		require.NoError(t, err)
		assert.Nil(t, rejection)
	})
}

func TestValidateCheckOrder(t *testing.T) {
	// Интервал одновременно в прошлом и вне рабочих часов:
	// побеждает более ранняя проверка
	v := newValidator(t, workingWeek(t), nil)
	now := at(tuesday, 23, 0)

	rejection, err := v.Validate(context.Background(), 1, domain.TimeRange{
		Start: at(tuesday, 5, 0),
		End:   at(tuesday, 6, 0),
	}, now, 0)

	require.NoError(t, err)
	require.NotNil(t, rejection)
	assert.Equal(t, domain.ReasonPastDateTime, rejection.Reason)
}
