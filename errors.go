package difactory

import (
	"fmt"
	"strings"
)

// UnregisteredTypeError is returned when resolution or validation reaches a
// type that has no binding.
type UnregisteredTypeError struct {
	Key Key
}

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("difactory: no binding registered for %s", keyName(e.Key))
}

// CircularDependencyError is returned by validation when a binding is
// reachable from itself through its own dependency chain. Path holds the
// cycle, starting and ending with the same Key.
type CircularDependencyError struct {
	Path []Key
}

func (e *CircularDependencyError) Error() string {
	if len(e.Path) == 0 {
		return "difactory: circular dependency detected"
	}
	names := make([]string, len(e.Path))
	for i, k := range e.Path {
		names[i] = keyName(k)
	}
	return fmt.Sprintf("difactory: circular dependency: %s", strings.Join(names, " -> "))
}

// IllegalLifetimeError is returned by validation when a lazy singleton
// depends, directly or transitively, on a per-request or provided binding.
// The singleton would capture one call's request-scoped instance forever.
type IllegalLifetimeError struct {
	Singleton Key // the offending singleton
	Scoped    Key // the request-scoped type it reaches
}

func (e *IllegalLifetimeError) Error() string {
	return fmt.Sprintf("difactory: singleton %s depends on request-scoped %s",
		keyName(e.Singleton), keyName(e.Scoped))
}

// MissingProvidedInstanceError is returned when resolution reaches a
// provided binding and the caller did not supply a value for it.
type MissingProvidedInstanceError struct {
	Key Key
}

func (e *MissingProvidedInstanceError) Error() string {
	return fmt.Sprintf("difactory: no instance supplied for provided type %s", keyName(e.Key))
}

// InvalidBindingError is returned at registration time when a binding cannot
// be created, for example from a constructor that is not a function or an
// alias target that does not implement the interface.
type InvalidBindingError struct {
	Reason string
}

func (e *InvalidBindingError) Error() string {
	return fmt.Sprintf("difactory: invalid binding: %s", e.Reason)
}

// ValidationError aggregates the failures found by ValidateAll.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "difactory: validation failed"
	case 1:
		return fmt.Sprintf("difactory: validation failed: %v", e.Errors[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "difactory: validation failed with %d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %v\n", i+1, err)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Unwrap exposes the individual failures to errors.Is / errors.As.
func (e *ValidationError) Unwrap() []error { return e.Errors }
