package dto

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type BatchFailure struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}
