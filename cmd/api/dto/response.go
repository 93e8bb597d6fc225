package dto

// ErrorResponseDTO is the body of every failed API call.
type ErrorResponseDTO struct {
	Error   string `json:"error" example:"InvalidArgument"`
	Message string `json:"message" example:"Comment cannot be empty."`
}

type SuccessResponseDTO struct {
	Success bool `json:"success" example:"true"`
}

type HealthResponseDTO struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
