package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimeOfDay время суток в минутах от полуночи (0-1439).
// Хранится в БД как smallint, в JSON сериализуется строкой "HH:MM".
type TimeOfDay int

const (
	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60

	// MaxTimeOfDay максимальное допустимое значение (23:59)
	MaxTimeOfDay TimeOfDay = MinutesPerDay - 1
)

var (
	// ErrInvalidTimeOfDay возвращается при значении вне диапазона 0-1439
	ErrInvalidTimeOfDay = errors.New("types: time of day out of range")

	// ErrInvalidTimeFormat возвращается при некорректном формате строки времени
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")
)

// ParseTimeOfDay парсит строку формата "HH:MM"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// FromTime извлекает время суток из time.Time (секунды отбрасываются)
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Validate проверяет, что значение в допустимом диапазоне
func (t TimeOfDay) Validate() error {
	if t < 0 || t > MaxTimeOfDay {
		return fmt.Errorf("%w: %d", ErrInvalidTimeOfDay, int(t))
	}
	return nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Before возвращает true, если t строго раньше other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// After возвращает true, если t строго позже other
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t > other
}

// AddMinutes возвращает время суток через minutes минут.
// Выход за пределы суток считается ошибкой - расписание не пересекает полночь.
func (t TimeOfDay) AddMinutes(minutes int) (TimeOfDay, error) {
	result := TimeOfDay(int(t) + minutes)
	if err := result.Validate(); err != nil {
		return 0, err
	}
	return result, nil
}

// MarshalJSON сериализует время в строку "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON парсит время из строки "HH:MM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeOfDay) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return int64(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*t = TimeOfDay(v)
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeOfDay, src)
	}
	return t.Validate()
}
