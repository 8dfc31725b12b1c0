// internal/domain/errors.go
package domain

import "errors"

var (
	// Authorization taxonomy. Every guard decision terminates in exactly one
	// of these; the handler layer maps them to HTTP statuses.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnavailable     = errors.New("service unavailable")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Tenancy-related errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrUnitNotFound         = errors.New("unit not found")
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrMembershipExists     = errors.New("active membership already exists")

	// Ledger-related errors
	ErrRecordNotFound    = errors.New("financial record not found")
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	ErrUnknownTransition = errors.New("unknown lifecycle transition")
)
