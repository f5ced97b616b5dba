package models

// ErrorResponse is the error envelope used on every failure path.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is used for success paths that only carry a message.
type MessageResponse struct {
	Message string `json:"message"`
}
