package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrRecaptchaFailed = errors.New("recaptcha verification failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnknownGuard    = errors.New("no guard configured for portal")
)

// User facing login messages.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgRejected           = "These credentials do not match our records."
	MsgInactive           = "Your account is inactive. Please contact support."
	MsgThrottled          = "Too many login attempts. Please try again in %d seconds."
)

// Internal rejection reasons. They are logged, never shown.
const (
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonThrottled          = "throttled"
	ReasonRoleNotAllowed     = "role_not_allowed"
	ReasonAccountInactive    = "account_inactive"
	ReasonEmployeeMissing    = "employee_missing"
	ReasonEmployeeInactive   = "employee_inactive"
	ReasonSalesRepMissing    = "sales_rep_missing"
	ReasonSalesRepInactive   = "sales_rep_inactive"
)

// ValidationError carries per-field messages for a malformed login form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
