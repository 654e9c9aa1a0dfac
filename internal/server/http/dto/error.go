package dto

import "time"

// APIError is the body of every error response.
type APIError struct {
	Path       string    `json:"path"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewAPIError stamps an error body with the current time.
func NewAPIError(path, message string, status int) APIError {
	return APIError{Path: path, Message: message, StatusCode: status, Timestamp: time.Now().UTC()}
}
