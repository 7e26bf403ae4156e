package reject_appointment

// RejectAppointmentRequest HTTP request model.
// Причина опциональна: при пустом теле подставляется стандартная.
type RejectAppointmentRequest struct {
	Reason string `json:"reason,omitempty"`
}
