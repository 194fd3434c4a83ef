package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for reconciliation failures
var (
	ErrNotConnected     = errors.New("device not connected")
	ErrVRFNotFound      = errors.New("vrf not configured")
	ErrApplyFailed      = errors.New("mutation rejected by device")
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("resource not found")
)

// VRFNotFoundError reports a desired VRF binding that does not resolve to a
// configured VRF on the device. Its message text is a contract: callers and
// tests match it exactly.
type VRFNotFoundError struct {
	Name string
}

func (e *VRFNotFoundError) Error() string {
	return fmt.Sprintf("vrf '%s' is not configured", e.Name)
}

func (e *VRFNotFoundError) Unwrap() error {
	return ErrVRFNotFound
}

// NewVRFNotFoundError creates a VRF-not-found error
func NewVRFNotFoundError(name string) *VRFNotFoundError {
	return &VRFNotFoundError{Name: name}
}

// ApplyError reports a single mutation that the device rejected.
type ApplyError struct {
	Field string
	Value string
	Err   error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("applying %s=%s: %v", e.Field, e.Value, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return ErrApplyFailed
}

// NewApplyError creates an apply error
func NewApplyError(field, value string, err error) *ApplyError {
	return &ApplyError{Field: field, Value: value, Err: err}
}

// ConnectionError reports a failed device round-trip. It wraps the transport
// error so callers can still inspect the cause.
type ConnectionError struct {
	Device string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("device %s unreachable: %v", e.Device, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewConnectionError creates a connection error
func NewConnectionError(device string, err error) *ConnectionError {
	return &ConnectionError{Device: device, Err: err}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
