/*
errors.go - Error types for the termination-pay calculators

ERROR CATEGORIES:
  1. Invalid input - a precondition is violated (missing dates, inverted
     dates, non-positive salary, unknown termination reason). Always returned
     as *ValidationError carrying EVERY issue found, so a form can show them
     all at once. errors.Is(err, ErrInvalidInput) holds for all of them.
  2. Advisories - NOT errors. Informational notes attached to a successful
     result (high salary, capped premium, tenure under one year).

USAGE:
  res, err := calc.CalculateSeverance(in)
  var verr *ValidationError
  if errors.As(err, &verr) {
      for _, msg := range verr.Issues.Strings() { ... }
  }
*/
package severance

import (
	"errors"
	"strings"
)

// ErrInvalidInput is the sentinel for every precondition failure.
var ErrInvalidInput = errors.New("invalid input")

// Issue is a single validation problem tied to an input field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + " " + i.Message
}

// Issues is an ordered list of validation problems.
type Issues []Issue

func (is *Issues) add(field, message string) {
	*is = append(*is, Issue{Field: field, Message: message})
}

// Strings renders each issue as a human-readable sentence.
func (is Issues) Strings() []string {
	out := make([]string, len(is))
	for i, issue := range is {
		out[i] = issue.String()
	}
	return out
}

// Err returns nil when there are no issues, else a *ValidationError.
func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	cp := make(Issues, len(is))
	copy(cp, is)
	return &ValidationError{Issues: cp}
}

// ValidationError aggregates every issue found for one input.
type ValidationError struct {
	Issues Issues
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + strings.Join(e.Issues.Strings(), "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// invalid builds a single-issue ValidationError.
func invalid(field, message string) error {
	return &ValidationError{Issues: Issues{{Field: field, Message: message}}}
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
