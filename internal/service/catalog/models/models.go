package models

import "github.com/Mkaniukov/carwash-crm/internal/domain"

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Price           int     `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"duration" validate:"required,gt=0"`
	Description     *string `json:"description,omitempty"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"duration"`
	Description     string `json:"description"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	resp := &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
	if s.Description != nil {
		resp.Description = *s.Description
	}
	return resp
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) []ServiceResponse {
	resp := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		if dto := FromDomainService(s); dto != nil {
			resp = append(resp, *dto)
		}
	}
	return resp
}
