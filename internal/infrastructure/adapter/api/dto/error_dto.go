package dto

import domainerr "github.com/amirhossein-jamali/imagify/internal/domain/error"

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse builds the error body for err with a client-facing message
func NewErrorResponse(err error, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Code:    domainerr.ErrorCode(err),
		Message: message,
	}
}
