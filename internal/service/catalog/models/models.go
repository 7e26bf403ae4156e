package models

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// ServiceResponse ответ с данными услуги каталога
type ServiceResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	MaxDailySlots int    `json:"maxDailySlots"`
	IsActive      bool   `json:"isActive"`
}

// ServiceListResponse список услуг каталога
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// FromDomainService конвертирует доменную модель в response
func FromDomainService(s *domain.CatalogService) *ServiceResponse {
	return &ServiceResponse{
		ID:            s.ID,
		Name:          s.Name,
		Category:      s.Category,
		MaxDailySlots: s.MaxDailySlots,
		IsActive:      s.IsActive,
	}
}

// FromDomainServiceList конвертирует список доменных моделей в response
func FromDomainServiceList(list []*domain.CatalogService) *ServiceListResponse {
	services := make([]*ServiceResponse, 0, len(list))
	for _, s := range list {
		services = append(services, FromDomainService(s))
	}
	return &ServiceListResponse{
		Services: services,
		Total:    len(services),
	}
}
