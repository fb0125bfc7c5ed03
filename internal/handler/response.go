package handler

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewErrorListResponse carries per-row failures from bulk operations
func NewErrorListResponse(message string, errors []string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
		Errors:  errors,
	}
}
