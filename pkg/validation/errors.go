package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation is one failed rule. It is rendered on the wire as {path, msg}.
type Violation struct {
	Field   string `json:"path"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"msg"`
}

// Error carries every violation found while checking a request.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+" "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one violation.
func (e *Error) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Fail builds an Error with a single violation, for checks that need the store.
func Fail(field, rule, msg string) *Error {
	return &Error{Violations: []Violation{{Field: field, Rule: rule, Message: msg}}}
}

// FromBindError converts gin binding errors (bad JSON, query/path tag failures).
func FromBindError(err error) *Error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &Error{Violations: make([]Violation, 0, len(verrs))}
		for _, fe := range verrs {
			out.Violations = append(out.Violations, Violation{
				Field:   fe.Field(),
				Rule:    ruleOf(fe),
				Message: formatFieldError(fe),
			})
		}
		return out
	}
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return Fail(ute.Field, "type", "must be a "+ute.Type.String())
	}
	if errors.As(err, &se) || errors.As(err, &ute) {
		return Fail("payload", "json", "invalid json")
	}
	return Fail("payload", "payload", "invalid payload")
}
