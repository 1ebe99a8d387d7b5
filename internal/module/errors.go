package module

import "errors"

// Registry and parameter errors.
var (
	// ErrTypeNotFound is returned when no factory is registered for a type.
	ErrTypeNotFound = errors.New("module type not found")

	// ErrTypeEmpty is returned when registering a factory with no type name.
	ErrTypeEmpty = errors.New("module type cannot be empty")

	// ErrFactoryNil is returned when registering a nil factory.
	ErrFactoryNil = errors.New("module factory cannot be nil")

	// ErrTypeAlreadyRegistered is returned when registering a duplicate type.
	ErrTypeAlreadyRegistered = errors.New("module type already registered")

	// ErrParamMissing is returned when a required parameter is absent.
	ErrParamMissing = errors.New("missing required parameter")

	// ErrParamType is returned when a parameter has the wrong type.
	ErrParamType = errors.New("invalid parameter type")
)
