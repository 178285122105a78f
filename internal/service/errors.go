package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-mesinkasir/internal/model"
	"go-mesinkasir/pkg/validator"
)

// Error kinds. Domain errors below wrap one of these so the HTTP layer can
// pick a status code with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var ErrForbidden = errors.New("Forbidden (admin only)")

var (
	ErrProductNotFound  = newDomainError(ErrNotFound, "Product not found")
	ErrStockNotFound    = newDomainError(ErrNotFound, "Stock not found")
	ErrStockNotAttached = newDomainError(ErrNotFound, "Stock belum terpasang di product ini")
	ErrStockInUse       = newDomainError(ErrConflict, "Stock tidak bisa dihapus karena masih dipakai product")
	ErrProductInUse     = newDomainError(ErrConflict, "Product tidak bisa dihapus karena masih dipakai riwayat stock")

	ErrInvalidCredentials = newDomainError(ErrUnauthorized, "Invalid username or password")
	ErrInvalidPIN         = newDomainError(ErrUnauthorized, "Invalid username or PIN")
	ErrUserInactive       = newDomainError(ErrUnauthorized, "User account is inactive")
	ErrSessionReplaced    = newDomainError(ErrUnauthorized, "Session expired (logged in on another device)")
)

type domainError struct {
	kind    error
	message string
}

func newDomainError(kind error, message string) error {
	return &domainError{kind: kind, message: message}
}

func (e *domainError) Error() string { return e.message }

func (e *domainError) Unwrap() error { return e.kind }

// ValidationError carries field level messages, rendered as 422.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "The given data was invalid."
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	first := e.Fields[keys[0]]
	msg := keys[0]
	if len(first) > 0 {
		msg = first[0]
	}
	switch extra := len(keys) - 1; {
	case extra == 1:
		return msg + " (and 1 more error)"
	case extra > 1:
		return fmt.Sprintf("%s (and %d more errors)", msg, extra)
	}
	return msg
}

// Add appends a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Replace drops earlier messages for field.
func (e *ValidationError) Replace(field, message string) {
	if e.Fields != nil {
		delete(e.Fields, field)
	}
	e.Add(field, message)
}

// OrNil returns nil when no field failed, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// validateRequest runs struct tags and returns a *ValidationError (or nil).
func validateRequest(req interface{}) *ValidationError {
	v := &ValidationError{}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		v.Fields = validator.ToMap(errs)
	}
	return v
}

func requiredMessage(field string) string {
	return "The " + strings.ReplaceAll(field, "_", " ") + " field is required."
}

func takenMessage(field string) string {
	return "The " + strings.ReplaceAll(field, "_", " ") + " has already been taken."
}

func invalidSelectionMessage(field string) string {
	return "The selected " + strings.ReplaceAll(field, "_", " ") + " is invalid."
}

// EnsureAdmin is the access gate run first in every mutating operation. The
// HTTP layer also calls it before parsing the body.
func EnsureAdmin(role string) error {
	if role != model.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// requireText treats an empty string like a missing value, replacing any
// other message for field.
func requireText(v *ValidationError, field string, s *string) {
	if s != nil && strings.TrimSpace(*s) == "" {
		v.Replace(field, requiredMessage(field))
	}
}
