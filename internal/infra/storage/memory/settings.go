package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// SettingsStore настройки расписаний в памяти
type SettingsStore struct {
	mu       sync.RWMutex
	settings map[int64]*domain.ScheduleSettings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: make(map[int64]*domain.ScheduleSettings)}
}

func (s *SettingsStore) Get(_ context.Context, scheduleID int64) (*domain.ScheduleSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.settings[scheduleID]
	if !ok {
		return nil, ErrSettingsNotFound
	}
	return cloneSettings(stored), nil
}

func (s *SettingsStore) Upsert(_ context.Context, settings *domain.ScheduleSettings) (*domain.ScheduleSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneSettings(settings)
	if existing, ok := s.settings[settings.ScheduleID]; ok {
		stored.DaysOff = append([]string(nil), existing.DaysOff...)
	}
	stored.UpdatedAt = time.Now()
	s.settings[settings.ScheduleID] = stored
	return cloneSettings(stored), nil
}

func (s *SettingsStore) AddDayOff(_ context.Context, scheduleID int64, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.settings[scheduleID]
	if !ok {
		stored = domain.DefaultScheduleSettings(scheduleID)
		s.settings[scheduleID] = stored
	}
	for _, d := range stored.DaysOff {
		if d == day {
			return nil
		}
	}
	stored.DaysOff = append(stored.DaysOff, day)
	sort.Strings(stored.DaysOff)
	return nil
}

func (s *SettingsStore) RemoveDayOff(_ context.Context, scheduleID int64, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.settings[scheduleID]
	if !ok {
		return ErrSettingsNotFound
	}
	kept := stored.DaysOff[:0]
	for _, d := range stored.DaysOff {
		if d != day {
			kept = append(kept, d)
		}
	}
	stored.DaysOff = kept
	return nil
}

func cloneSettings(src *domain.ScheduleSettings) *domain.ScheduleSettings {
	dst := *src
	dst.WorkingDays = append([]domain.Weekday(nil), src.WorkingDays...)
	dst.DaysOff = append([]string{}, src.DaysOff...)
	return &dst
}
