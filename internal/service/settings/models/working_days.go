package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// WorkingDays рабочие дни недели в формате клиента: 0 = понедельник ... 6 = воскресенье.
// Принимает строку "0,1,2,3,4" или массив [0,1,2,3,4], отдаёт строку.
type WorkingDays []int

// ParseWorkingDays разбирает строку вида "0,1,2"
func ParseWorkingDays(s string) (WorkingDays, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WorkingDays{}, nil
	}

	parts := strings.Split(s, ",")
	days := make(WorkingDays, 0, len(parts))
	for _, part := range parts {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid working day %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

// FromDomainWeekdays конвертирует domain дни недели (1..7) в формат клиента
func FromDomainWeekdays(weekdays []domain.Weekday) WorkingDays {
	days := make(WorkingDays, 0, len(weekdays))
	for _, wd := range weekdays {
		days = append(days, int(wd)-1)
	}
	sort.Ints(days)
	return days
}

// ToDomain конвертирует в domain дни недели, проверяя диапазон 0..6
func (d WorkingDays) ToDomain() ([]domain.Weekday, error) {
	weekdays := make([]domain.Weekday, 0, len(d))
	for _, day := range d {
		if day < 0 || day > 6 {
			return nil, fmt.Errorf("working day %d is out of range 0..6", day)
		}
		weekdays = append(weekdays, domain.Weekday(day+1))
	}
	return weekdays, nil
}

func (d WorkingDays) String() string {
	parts := make([]string, 0, len(d))
	for _, day := range d {
		parts = append(parts, strconv.Itoa(day))
	}
	return strings.Join(parts, ",")
}

func (d WorkingDays) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *WorkingDays) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var days []int
		if err := json.Unmarshal(data, &days); err != nil {
			return err
		}
		*d = days
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("working_days must be a string or an array: %w", err)
	}
	days, err := ParseWorkingDays(s)
	if err != nil {
		return err
	}
	*d = days
	return nil
}
