package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAccountNotFound indicates that the referenced account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// ErrUnsupportedCurrency indicates that an account does not support the
// currency of the attempted operation.
var ErrUnsupportedCurrency = errors.New("account does not support currency")

// ErrInsufficientFunds indicates that an account balance is too low to cover
// a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrHasAssociatedExpenses indicates that an account cannot be deleted
// because expenses still reference it.
var ErrHasAssociatedExpenses = errors.New("account has associated expenses")

// SchemaValidationError reports which sections of an imported document failed
// shape validation, with the individual violations per section. The whole
// import is rejected when any section fails.
type SchemaValidationError struct {
	// Violations maps a section name ("expenses", "incomes", ...) to its
	// field-level violation messages.
	Violations map[string][]string
}

// Error lists the failed sections; the per-field details stay available on
// the Violations map for structured responses.
func (e *SchemaValidationError) Error() string {
	sections := make([]string, 0, len(e.Violations))
	for section := range e.Violations {
		sections = append(sections, section)
	}
	return fmt.Sprintf("invalid schema for sections: %s", strings.Join(sections, ", "))
}

// Add appends a violation message for a section.
func (e *SchemaValidationError) Add(section, message string) {
	if e.Violations == nil {
		e.Violations = make(map[string][]string)
	}
	e.Violations[section] = append(e.Violations[section], message)
}

// HasViolations reports whether any section failed.
func (e *SchemaValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}
