package dto

// Response is the uniform envelope of every API reply. Code mirrors the HTTP status.
type Response struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(code int, message string, data any) Response {
	return Response{Code: code, Success: true, Message: message, Data: data}
}

// Fail builds an error envelope.
func Fail(code int, message string) Response {
	return Response{Code: code, Success: false, Message: message}
}
