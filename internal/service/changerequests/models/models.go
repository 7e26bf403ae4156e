package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CreateChangeRequest запрос клиента на изменение записи
type CreateChangeRequest struct {
	AppointmentID int64
	Reason        string
}

// ResolveChangeRequest решение администратора по запросу
type ResolveChangeRequest struct {
	RequestID int64
	Decision  string  // "approve" | "reject"
	Response  *string // Комментарий администратора (опционально)
}

// ChangeRequestResponse ответ с данными запроса на изменение
type ChangeRequestResponse struct {
	ID            int64   `json:"id"`
	AppointmentID int64   `json:"appointmentId"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	AdminResponse *string `json:"adminResponse,omitempty"`
	Consumed      bool    `json:"consumed"`
	RequestedAt   string  `json:"requestedAt"`
	RespondedAt   *string `json:"respondedAt,omitempty"`
}

// ChangeRequestListResponse список запросов на изменение
type ChangeRequestListResponse struct {
	Requests []*ChangeRequestResponse `json:"requests"`
	Total    int                      `json:"total"`
}

// CanEditResponse ответ на проверку права редактирования
type CanEditResponse struct {
	AppointmentID int64 `json:"appointmentId"`
	CanEdit       bool  `json:"canEdit"`
}

// FromDomainChangeRequest конвертирует доменную модель в response
func FromDomainChangeRequest(r *domain.ChangeRequest) *ChangeRequestResponse {
	resp := &ChangeRequestResponse{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		Reason:        r.Reason,
		Status:        string(r.Status),
		AdminResponse: r.AdminResponse,
		Consumed:      r.Consumed,
		RequestedAt:   r.RequestedAt.Format(time.RFC3339),
	}

	if r.RespondedAt != nil {
		respondedAt := r.RespondedAt.Format(time.RFC3339)
		resp.RespondedAt = &respondedAt
	}

	return resp
}

// FromDomainChangeRequestList конвертирует список доменных моделей в response
func FromDomainChangeRequestList(list []*domain.ChangeRequest) *ChangeRequestListResponse {
	requests := make([]*ChangeRequestResponse, 0, len(list))
	for _, r := range list {
		requests = append(requests, FromDomainChangeRequest(r))
	}
	return &ChangeRequestListResponse{
		Requests: requests,
		Total:    len(requests),
	}
}
