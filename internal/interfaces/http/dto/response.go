package dto

// Response is the uniform API envelope. Business failures (validation,
// rejected feeds, state conflicts) come back as HTTP 200 with Status false;
// only authentication and authorization use 401/403.
type Response struct {
	Status bool   `json:"Status"`
	Data   any    `json:"Data,omitempty"`
	Error  string `json:"Error,omitempty"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data any) Response {
	return Response{
		Status: true,
		Data:   data,
	}
}

// NewErrorResponse wraps an error message in a failed envelope
func NewErrorResponse(message string) Response {
	return Response{
		Status: false,
		Error:  message,
	}
}
