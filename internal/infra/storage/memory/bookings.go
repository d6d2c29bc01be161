package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// BookingStore потокобезопасное хранилище бронирований в памяти.
// Используется драйвером "memory" и в тестах.
type BookingStore struct {
	mu       sync.RWMutex
	nextID   int64
	bookings map[int64]*domain.Booking
	now      func() time.Time
}

// NewBookingStore создает пустое хранилище
func NewBookingStore() *BookingStore {
	return &BookingStore{
		nextID:   1,
		bookings: make(map[int64]*domain.Booking),
		now:      time.Now,
	}
}

func (s *BookingStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *booking
	stored.ID = s.nextID
	stored.CreatedAt = s.now()
	stored.UpdatedAt = stored.CreatedAt
	s.nextID++
	s.bookings[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (s *BookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	result := *b
	return &result, nil
}

func (s *BookingStore) GetByCancelToken(_ context.Context, token string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if token != "" && b.CancelToken == token {
			result := *b
			return &result, nil
		}
	}
	return nil, ErrBookingNotFound
}

// List возвращает бронирования по фильтру, отсортированные по началу
func (s *BookingStore) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if filter.Matches(b) {
			copied := *b
			result = append(result, &copied)
		}
	}
	sortByStart(result)
	return result, nil
}

// ListOccupying возвращает неотменённые бронирования, пересекающиеся с [from, to)
func (s *BookingStore) ListOccupying(_ context.Context, scheduleID int64, from, to time.Time) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.ScheduleID == scheduleID && b.Overlaps(from, to) {
			copied := *b
			result = append(result, &copied)
		}
	}
	sortByStart(result)
	return result, nil
}

func (s *BookingStore) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	if b.Status != from {
		return fmt.Errorf("%w: booking id=%d is %s, expected %s", domain.ErrStatusChanged, id, b.Status, from)
	}
	b.Status = to
	b.UpdatedAt = s.now()
	return nil
}

func (s *BookingStore) UpdateTimes(_ context.Context, id int64, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.StartTime = start
	b.EndTime = end
	b.UpdatedAt = s.now()
	return nil
}

func sortByStart(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].StartTime.Equal(bookings[j].StartTime) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}
