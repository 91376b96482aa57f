// Package validate implements declarative field-level request validation.
// Rule sets are evaluated eagerly in full so every violated field is
// reported together, and results carry an ordered field->messages map.
package validate

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/tasktracker/backend/domain"
)

// Errors accumulates field violations in evaluation order.
type Errors struct {
	order  []string
	fields map[string][]string
}

func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

// Add records a violation message for a field, preserving insertion order.
func (e *Errors) Add(field, message string) {
	if _, seen := e.fields[field]; !seen {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], message)
}

func (e *Errors) Empty() bool {
	return e == nil || len(e.fields) == 0
}

// Fields returns the field->messages map.
func (e *Errors) Fields() map[string][]string {
	return e.fields
}

// Summary produces the failure headline: a single failed field inlines its
// first message, several failed fields are listed by name only.
func (e *Errors) Summary() string {
	if len(e.order) == 1 {
		field := e.order[0]
		return fmt.Sprintf("Validation failed: %s", e.fields[field][0])
	}
	return fmt.Sprintf("Validation failed for fields: %s.", strings.Join(e.order, ", "))
}

// Err converts the accumulated violations into a domain validation failure,
// or nil when every rule passed.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return domain.NewValidationError(e.Summary(), e.fields)
}

// Required records a violation when the value is empty.
func Required(e *Errors, field, value, message string) {
	if value == "" {
		e.Add(field, message)
	}
}

// MaxLen records a violation when the value exceeds max characters.
// Empty values are left to Required.
func MaxLen(e *Errors, field, value string, max int, message string) {
	if len([]rune(value)) > max {
		e.Add(field, message)
	}
}

// LenBetween records a violation when a non-empty value falls outside
// [min, max] characters.
func LenBetween(e *Errors, field, value string, min, max int, message string) {
	if value == "" {
		return
	}
	n := len([]rune(value))
	if n < min || n > max {
		e.Add(field, message)
	}
}

// Email records a violation when a non-empty value is not a syntactically
// valid address.
func Email(e *Errors, field, value, message string) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		e.Add(field, message)
	}
}
