package cancel_appointment

// CancelAppointmentRequest HTTP request model.
// Причина опциональна: при пустом теле подставляется стандартная.
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}
