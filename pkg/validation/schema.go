package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Mode selects how absent fields are treated.
type Mode int

const (
	// Create checks every rule; an absent field is validated as empty.
	Create Mode = iota
	// Update only checks the fields that were supplied.
	Update
)

// Rule binds a wire field name to a validator tag list, e.g. "required,max=50".
type Rule struct {
	Field string
	Tags  string
}

// Schema is an ordered rule set; violations come out in schema order.
type Schema []Rule

// Fields holds the supplied request values keyed by wire field name.
type Fields map[string]any

// Put records *p under name when p is not nil.
func Put[T any](f Fields, name string, p *T) {
	if p != nil {
		f[name] = *p
	}
}

// Check evaluates s against f and returns a *Error listing every violation, or nil.
func (val *Validator) Check(s Schema, f Fields, mode Mode) error {
	var out []Violation
	for _, r := range s {
		value, ok := f[r.Field]
		if !ok {
			if mode == Update {
				continue
			}
			value = ""
		}
		err := val.v.Var(value, r.Tags)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		// Only the first failing tag per field, like a form would show it.
		fe := verrs[0]
		out = append(out, Violation{Field: r.Field, Rule: ruleOf(fe), Message: formatFieldError(fe)})
	}
	if len(out) == 0 {
		return nil
	}
	return &Error{Violations: out}
}
