package resolve_change_request

// ResolveChangeRequestRequest HTTP request model
type ResolveChangeRequestRequest struct {
	Decision string  `json:"decision"` // "approve" | "reject"
	Response *string `json:"response,omitempty"`
}
