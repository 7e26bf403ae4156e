package create_change_request

// CreateChangeRequestRequest HTTP request model
type CreateChangeRequestRequest struct {
	Reason string `json:"reason"`
}
