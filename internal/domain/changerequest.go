package domain

import "time"

// ChangeRequestStatus represents the status of a change request
type ChangeRequestStatus string

const (
	RequestPending  ChangeRequestStatus = "pending"
	RequestApproved ChangeRequestStatus = "approved"
	RequestRejected ChangeRequestStatus = "rejected"
)

// ChangeRequest разрешение на однократное изменение уже поданной записи.
// Создается клиентом, разрешается администратором ровно один раз.
// Одобренный запрос дает право на одно успешное редактирование;
// факт использования фиксируется флагом Consumed, статус approved
// сохраняется для истории.
type ChangeRequest struct {
	ID            int64
	AppointmentID int64
	Reason        string
	Status        ChangeRequestStatus
	AdminResponse *string
	Consumed      bool
	RequestedAt   time.Time
	RespondedAt   *time.Time
}

// IsResolved returns true if an administrator has already decided on the request
func (r *ChangeRequest) IsResolved() bool {
	return r.Status != RequestPending
}

// IsConsumable returns true if the request still grants an edit window
func (r *ChangeRequest) IsConsumable() bool {
	return r.Status == RequestApproved && !r.Consumed
}

// ChangeRequestDecision решение администратора по запросу
type ChangeRequestDecision string

const (
	DecisionApprove ChangeRequestDecision = "approve"
	DecisionReject  ChangeRequestDecision = "reject"
)

// StatusForDecision maps an admin decision to the resulting request status
func StatusForDecision(d ChangeRequestDecision) (ChangeRequestStatus, bool) {
	switch d {
	case DecisionApprove:
		return RequestApproved, true
	case DecisionReject:
		return RequestRejected, true
	default:
		return "", false
	}
}
