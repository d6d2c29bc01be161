package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	"github.com/Mkaniukov/carwash-crm/internal/service/catalog/models"
)

// Service сервис каталога услуг мойки
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List возвращает все услуги
func (s *Service) List(ctx context.Context) ([]models.ServiceResponse, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// GetByID возвращает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: failed to get service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// Create добавляет услугу в каталог
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q, duration=%d", req.Name, req.DurationMinutes)

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case len(name) > domain.MaxServiceNameLength:
		return nil, fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	case req.Price < 0:
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case req.DurationMinutes <= 0 || req.DurationMinutes > domain.MaxServiceDurationMinutes:
		return nil, fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		Name:            name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
	})
	if err != nil {
		s.logger.Error("Create: failed to create service: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service id=%d created", created.ID)
	return models.FromDomainService(created), nil
}
