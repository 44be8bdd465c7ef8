package handlers

// ErrorResponse is the JSON body returned for any failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: error description
	Error string `json:"error"`
}
