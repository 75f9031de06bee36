package dto

// PageRef describes an adjacent page in a paginated listing.
type PageRef struct {
	Page  int `json:"page" example:"2"`
	Limit int `json:"limit" example:"10"`
}

// PaginationInfo carries next/prev page descriptors for list endpoints.
type PaginationInfo struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// APIResponse is the envelope shared by every JSON response.
type APIResponse struct {
	Success    bool            `json:"success" example:"true"`
	Data       interface{}     `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Count      *int            `json:"count,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// SuccessMessage returns a successful envelope carrying only a message.
func SuccessMessage(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

// SuccessCount wraps a list in a successful envelope with its item count.
func SuccessCount(data interface{}, count int) APIResponse {
	return APIResponse{Success: true, Data: data, Count: &count}
}

// SuccessPage wraps a list with count and pagination descriptors.
func SuccessPage(data interface{}, count int, pagination *PaginationInfo) APIResponse {
	return APIResponse{Success: true, Data: data, Count: &count, Pagination: pagination}
}
