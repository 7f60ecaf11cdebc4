package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrRateLimited        = errors.New("rate limited")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrDraftState         = errors.New("draft state error")
)

// DenialReason is the machine-readable reason code recorded in the audit log
// whenever an issuance or delegated action is denied.
type DenialReason string

const (
	DenialMalformedRequest   DenialReason = "malformed_request"
	DenialKillSwitch         DenialReason = "killswitch"
	DenialMaintenance        DenialReason = "maintenance"
	DenialBadCredentials     DenialReason = "bad_client_credentials"
	DenialRateLimited        DenialReason = "rate_limited"
	DenialNoBinding          DenialReason = "no_binding"
	DenialUnverified         DenialReason = "unverified"
	DenialDelegationDisabled DenialReason = "delegation_disabled"
	DenialDelegatorInactive  DenialReason = "delegator_inactive"
	DenialUnknownScope       DenialReason = "unknown_scope"
	DenialForbiddenForBots   DenialReason = "forbidden_for_bots"
	DenialBotNotAuthorized   DenialReason = "bot_not_authorized"
	DenialRoleRequired       DenialReason = "role_required"
)

// DenialError carries the audit reason code for a rejected issuance step.
// It unwraps to the matching sentinel so transport code can map it to a
// status without inspecting the reason.
type DenialError struct {
	Reason  DenialReason
	Details []string
	err     error
}

// NewDenial creates a DenialError wrapping the given sentinel.
func NewDenial(sentinel error, reason DenialReason, details ...string) *DenialError {
	return &DenialError{Reason: reason, Details: details, err: sentinel}
}

func (e *DenialError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Details, ", "))
	}
	return string(e.Reason)
}

func (e *DenialError) Unwrap() error { return e.err }

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
