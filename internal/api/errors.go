package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TimeoutError means a long-running call exceeded its deadline. The user
// sees a retry affordance, distinct from a connectivity problem.
type TimeoutError struct{}

func (e *TimeoutError) Error() string {
	return "request timed out, please try again"
}

// UnreachableError means the request failed at the transport level
// before any response arrived.
type UnreachableError struct {
	BaseURL string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("unable to reach backend at %s: %v", e.BaseURL, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// ServerError is a non-success response. Message is extracted from the
// structured error payload when present, else a generic fallback.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
}

// IsTimeout reports whether err is a generation/CRUD deadline failure.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsUnreachable reports whether err is a transport-level failure.
func IsUnreachable(err error) bool {
	var ue *UnreachableError
	return errors.As(err, &ue)
}

// errorMessage pulls a human-readable message out of an error payload,
// accepting either {"message": ...} or {"detail": ...} shapes.
func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	if payload.Message != "" {
		return payload.Message
	}
	if len(payload.Detail) > 0 {
		var detailStr string
		if err := json.Unmarshal(payload.Detail, &detailStr); err == nil && detailStr != "" {
			return detailStr
		}
		var detailObj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Detail, &detailObj); err == nil && detailObj.Message != "" {
			return detailObj.Message
		}
	}
	return fallback
}
