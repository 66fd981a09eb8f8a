package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tr(startHour, startMin, endHour, endMin int) TimeRange {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return TimeRange{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestTimeRangeValid(t *testing.T) {
	t.Run("Start Before End", func(t *testing.T) {
		assert.True(t, tr(10, 0, 11, 0).Valid())
	})

	t.Run("Degenerate Range", func(t *testing.T) {
		assert.False(t, tr(10, 0, 10, 0).Valid())
	})

	t.Run("Inverted Range", func(t *testing.T) {
		assert.False(t, tr(11, 0, 10, 0).Valid())
	})
}

func TestTimeRangeOverlaps(t *testing.T) {
	t.Run("Partial Overlap", func(t *testing.T) {
		assert.True(t, tr(10, 0, 11, 0).Overlaps(tr(10, 30, 11, 30)))
	})

	t.Run("Containment", func(t *testing.T) {
		assert.True(t, tr(10, 0, 12, 0).Overlaps(tr(10, 30, 11, 0)))
	})

	t.Run("Identical Ranges", func(t *testing.T) {
		assert.True(t, tr(10, 0, 11, 0).Overlaps(tr(10, 0, 11, 0)))
	})

	t.Run("Touching Boundaries Do Not Overlap", func(t *testing.T) {
		// Полуоткрытые интервалы: конец одного может совпадать с началом другого
		assert.False(t, tr(10, 0, 11, 0).Overlaps(tr(11, 0, 12, 0)))
		assert.False(t, tr(11, 0, 12, 0).Overlaps(tr(10, 0, 11, 0)))
	})

	t.Run("Disjoint Ranges", func(t *testing.T) {
		assert.False(t, tr(10, 0, 11, 0).Overlaps(tr(14, 0, 15, 0)))
	})

	t.Run("Symmetry", func(t *testing.T) {
		a := tr(10, 0, 11, 30)
		b := tr(11, 0, 12, 0)
		assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
	})
}

func TestTimeRangeMinutes(t *testing.T) {
	assert.Equal(t, 60, tr(10, 0, 11, 0).Minutes())
	assert.Equal(t, 45, tr(9, 15, 10, 0).Minutes())
}

func TestTimeRangeWeekday(t *testing.T) {
	// 2026-09-01 - вторник
	assert.Equal(t, time.Tuesday, tr(10, 0, 11, 0).Weekday())
}
