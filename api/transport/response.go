package transport

import "encoding/json"

// ApiResponse is the wrapper for successful payloads.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(message string, data interface{}) ApiResponse {
	if message == "" {
		message = "Request completed successfully."
	}
	return ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Problem is the structured error payload. Errors carries per-field messages
// and is present for validation failures only.
type Problem struct {
	Status int                 `json:"status"`
	Title  string              `json:"title"`
	Detail string              `json:"detail"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// String returns the JSON representation, for writers that need a body
// outside the handler layer.
func (p Problem) String() string {
	out, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(out)
}
