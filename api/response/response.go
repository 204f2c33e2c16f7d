package response

// ErrorResponse is the JSON error body returned by the API routes.
type ErrorResponse struct {
	Error string `json:"error"`
}
