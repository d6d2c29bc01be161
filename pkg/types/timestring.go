package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat возвращается, когда строку нельзя разобрать как HH:MM[:SS]
var ErrInvalidTimeFormat = errors.New("types: invalid time string format")

// ErrOutOfDay возвращается, когда результат арифметики выходит за пределы суток
var ErrOutOfDay = errors.New("types: time is out of day bounds")

const secondsPerDay = 24 * 60 * 60

// TimeString время суток без даты и часового пояса.
// Каноническая форма: "HH:MM", либо "HH:MM:SS", если секунды ненулевые.
type TimeString string

// NewTimeStringFromString разбирает строку формата HH:MM или HH:MM:SS
func NewTimeStringFromString(s string) (TimeString, error) {
	seconds, err := parseClock(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return fromSeconds(seconds), nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке.
// Используется для констант и в тестах.
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTimeString берёт время суток из time.Time
func NewTimeString(t time.Time) TimeString {
	return fromSeconds(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// String возвращает каноническое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := parseClock(string(t))
	return err
}

// Seconds возвращает количество секунд от начала суток.
// Для некорректного значения возвращает 0.
func (t TimeString) Seconds() int {
	seconds, err := parseClock(string(t))
	if err != nil {
		return 0
	}
	return seconds
}

// Offset возвращает смещение от полуночи
func (t TimeString) Offset() time.Duration {
	return time.Duration(t.Seconds()) * time.Second
}

// Hour возвращает час
func (t TimeString) Hour() int {
	return t.Seconds() / 3600
}

// Minute возвращает минуты
func (t TimeString) Minute() int {
	return t.Seconds() % 3600 / 60
}

// AddMinutes сдвигает время на указанное число минут в пределах суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	result := t.Seconds() + minutes*60
	if result < 0 || result >= secondsPerDay {
		return "", fmt.Errorf("%w: %s%+dm", ErrOutOfDay, t, minutes)
	}
	return fromSeconds(result), nil
}

// IsBefore строго раньше
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Seconds() < other.Seconds()
}

// IsAfter строго позже
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Seconds() > other.Seconds()
}

// Equal то же время суток
func (t TimeString) Equal(other TimeString) bool {
	return t.Seconds() == other.Seconds()
}

// HHMM форматирует как "HH:MM"
func (t TimeString) HHMM() string {
	seconds := t.Seconds()
	return fmt.Sprintf("%02d:%02d", seconds/3600, seconds%3600/60)
}

// HHMMSS форматирует как "HH:MM:SS"
func (t TimeString) HHMMSS() string {
	seconds := t.Seconds()
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// Scan реализует sql.Scanner для колонок TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// postgres может вернуть дробные секунды: "09:00:00.000000"
	if idx := strings.IndexByte(s, '.'); idx > 0 {
		s = s[:idx]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.HHMMSS(), nil
}

func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	values := [3]int{}
	for i, part := range parts {
		if len(part) == 0 || len(part) > 2 || (i > 0 && len(part) != 2) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		values[i] = v
	}

	hour, minute, second := values[0], values[1], values[2]
	if hour > 23 || minute > 59 || second > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return hour*3600 + minute*60 + second, nil
}

func fromSeconds(seconds int) TimeString {
	if seconds%60 == 0 {
		return TimeString(fmt.Sprintf("%02d:%02d", seconds/3600, seconds%3600/60))
	}
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60))
}
