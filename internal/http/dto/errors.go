package dto

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type StatusResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
