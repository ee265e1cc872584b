package controller

import (
	"errors"
	"fmt"

	"github.com/markusressel/asus2go/internal/attr"
)

var (
	ErrNotSupported = errors.New("not supported on this machine")
	ErrInvalidValue = errors.New("invalid value")
)

// CapabilityError is returned when an operation is requested on a feature
// this machine does not expose. No device has been touched when it is returned.
type CapabilityError struct {
	Feature string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Feature, ErrNotSupported)
}

func (e *CapabilityError) Is(target error) bool {
	return target == ErrNotSupported
}

// DeviceError is returned when reading or writing a device attribute failed
type DeviceError struct {
	Attribute string
	Err       error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device attribute %s: %v", e.Attribute, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ValidationError is returned for malformed user input, before any device write
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidValue
}

func requireCapability(supported bool, feature string) error {
	if !supported {
		return &CapabilityError{Feature: feature}
	}
	return nil
}

func deviceError(a attr.Attribute, err error) error {
	return &DeviceError{Attribute: a.Name(), Err: err}
}

func validationError(field string, format string, args ...any) error {
	return &ValidationError{Field: field, Err: fmt.Errorf(format, args...)}
}
