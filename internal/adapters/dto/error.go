package dto

// ErrorResponse is the failure body of every transport.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
