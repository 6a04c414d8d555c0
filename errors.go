package gofunc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTypeMismatch is matched by every *TypeMismatchError.
	ErrTypeMismatch = errors.New("gofunc: operand is not a function")
	// ErrMalformedPayload is matched by every *MalformedPayloadError.
	ErrMalformedPayload = errors.New("gofunc: malformed payload")
)

// TypeMismatchError reports combination operands that are not Functions.
// Sides lists "left", "right" or both; Types holds the matching dynamic
// types.
type TypeMismatchError struct {
	Op    Op
	Sides []string
	Types []string
}

func (e *TypeMismatchError) Error() string {
	parts := make([]string, len(e.Sides))
	for i := range e.Sides {
		parts[i] = fmt.Sprintf("%s operand is %s", e.Sides[i], e.Types[i])
	}
	return fmt.Sprintf("gofunc: cannot %s: %s", e.Op, strings.Join(parts, ", "))
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// MalformedPayloadError reports a payload whose shape does not fit the
// named primitive.
type MalformedPayloadError struct {
	Name   string
	Want   PayloadKind
	Got    PayloadKind
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("gofunc: %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("gofunc: %s: want %s payload, got %s", e.Name, e.Want, e.Got)
}

func (e *MalformedPayloadError) Is(target error) bool { return target == ErrMalformedPayload }
