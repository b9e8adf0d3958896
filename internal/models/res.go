package models

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Shown   int         `json:"shown,omitempty"`
	Limit   int         `json:"limit,omitempty"`
	Total   int         `json:"total,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

// PagedResponse reports a slice of the owner's snapshot: how many items
// were already shown, the page size, and the filtered total.
func PagedResponse(data interface{}, shown, limit, total int) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Shown:   shown,
		Limit:   limit,
		Total:   total,
	}
}
