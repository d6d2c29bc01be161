package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// ServiceStore каталог услуг в памяти
type ServiceStore struct {
	mu       sync.RWMutex
	nextID   int64
	services map[int64]*domain.Service
}

func NewServiceStore() *ServiceStore {
	return &ServiceStore{nextID: 1, services: make(map[int64]*domain.Service)}
}

func (s *ServiceStore) Create(_ context.Context, service *domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *service
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.nextID++
	s.services[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (s *ServiceStore) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	service, ok := s.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	result := *service
	return &result, nil
}

func (s *ServiceStore) List(_ context.Context) ([]*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Service, 0, len(s.services))
	for _, service := range s.services {
		copied := *service
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
