package dto

import "time"

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

type ValidationResponse struct {
	Ok        bool              `json:"ok"`
	Details   string            `json:"details"`
	Fields    map[string]string `json:"fields"`
	Timestamp time.Time         `json:"timestamp"`
}

func NewValidationResponse(details string, fields map[string]string) ValidationResponse {
	return ValidationResponse{
		Ok:        false,
		Details:   details,
		Fields:    fields,
		Timestamp: time.Now(),
	}
}
