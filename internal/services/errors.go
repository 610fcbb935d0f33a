package services

import "errors"

// Common service errors
var (
	// ErrSenderNotConfigured means the global sender settings row is absent
	// or incomplete. Fatal to a full run; a 400 on the on-demand path.
	ErrSenderNotConfigured = errors.New("sender email or credential not configured")

	// ErrRecipientNotConfigured means the tenant has no notification
	// settings or no recipient email. The sweep skips such tenants; the
	// on-demand path answers 400.
	ErrRecipientNotConfigured = errors.New("recipient email not configured for tenant")

	// ErrEvaluationLookup wraps a failed evaluation-record read. Callers
	// must treat it as "could not determine", never as "not evaluated".
	ErrEvaluationLookup = errors.New("evaluation lookup failed")

	// ErrTenantNotFound is returned when the targeted tenant does not exist
	ErrTenantNotFound = errors.New("tenant not found")
)
