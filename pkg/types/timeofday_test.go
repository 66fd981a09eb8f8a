package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("Valid Time", func(t *testing.T) {
		tod, err := ParseTimeOfDay("13:45")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay(13*60+45), tod)
	})

	t.Run("Midnight", func(t *testing.T) {
		tod, err := ParseTimeOfDay("00:00")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay(0), tod)
	})

	t.Run("Invalid Format", func(t *testing.T) {
		_, err := ParseTimeOfDay("25:00")
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)

		_, err = ParseTimeOfDay("9am")
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})
}

func TestTimeOfDayString(t *testing.T) {
	tod, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", tod.String())
	assert.Equal(t, "23:59", MaxTimeOfDay.String())
}

func TestTimeOfDayAddMinutes(t *testing.T) {
	t.Run("Within Day", func(t *testing.T) {
		tod, err := ParseTimeOfDay("10:00")
		require.NoError(t, err)

		result, err := tod.AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, "11:30", result.String())
	})

	t.Run("Past End Of Day", func(t *testing.T) {
		tod, err := ParseTimeOfDay("23:30")
		require.NoError(t, err)

		_, err = tod.AddMinutes(60)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
	})
}

func TestTimeOfDayJSON(t *testing.T) {
	t.Run("Marshal", func(t *testing.T) {
		tod, err := ParseTimeOfDay("14:30")
		require.NoError(t, err)

		data, err := json.Marshal(tod)
		require.NoError(t, err)
		assert.Equal(t, `"14:30"`, string(data))
	})

	t.Run("Unmarshal", func(t *testing.T) {
		var tod TimeOfDay
		require.NoError(t, json.Unmarshal([]byte(`"08:15"`), &tod))
		assert.Equal(t, TimeOfDay(8*60+15), tod)
	})

	t.Run("Unmarshal Invalid", func(t *testing.T) {
		var tod TimeOfDay
		assert.Error(t, json.Unmarshal([]byte(`"8:15am"`), &tod))
	})
}

func TestTimeOfDayValidate(t *testing.T) {
	assert.NoError(t, TimeOfDay(0).Validate())
	assert.NoError(t, MaxTimeOfDay.Validate())
	assert.ErrorIs(t, TimeOfDay(-1).Validate(), ErrInvalidTimeOfDay)
	assert.ErrorIs(t, TimeOfDay(MinutesPerDay).Validate(), ErrInvalidTimeOfDay)
}
