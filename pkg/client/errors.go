package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionExpired means there is no usable token; the caller must log in again.
	ErrSessionExpired = errors.New("session expired, please log in again")
	// ErrPasswordTooShort is raised locally before any request is sent.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
)

// Violation mirrors one entry of the server's "errores" list.
type Violation struct {
	Path string `json:"path"`
	Rule string `json:"rule,omitempty"`
	Msg  string `json:"msg"`
}

// APIError is any non-2xx answer from the API.
type APIError struct {
	Status     int
	Message    string
	Violations []Violation
}

func (e *APIError) Error() string {
	if len(e.Violations) > 0 {
		parts := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			parts = append(parts, v.Path+": "+v.Msg)
		}
		return fmt.Sprintf("validation failed (%d): %s", e.Status, strings.Join(parts, "; "))
	}
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// FieldError joins the messages reported for one field, "" when there are none.
func (e *APIError) FieldError(field string) string {
	var msgs []string
	for _, v := range e.Violations {
		if v.Path == field {
			msgs = append(msgs, v.Msg)
		}
	}
	return strings.Join(msgs, ", ")
}
