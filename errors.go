package graphattr

import (
	"errors"
	"fmt"

	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/graph"
	"github.com/hupe1980/graphattr/operator"
	"github.com/hupe1980/graphattr/snapshot"
)

var (
	// ErrConversion is returned when a value is not accepted by an
	// attribute type. The *attribute.ConversionError stays reachable
	// through errors.As.
	ErrConversion = attribute.ErrConversion

	// ErrUnsupportedSignature is returned when an operation has no
	// implementation for its operand kinds.
	ErrUnsupportedSignature = operator.ErrUnsupportedSignature

	// ErrDivisionByZero is returned by integer quotient and modulus.
	ErrDivisionByZero = operator.ErrDivisionByZero

	// ErrNotFound is returned for unknown attributes, elements and snapshots.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for malformed requests.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrUnknownOperation indicates an operation name with no registry.
type ErrUnknownOperation struct {
	Name string
}

func (e *ErrUnknownOperation) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

func (e *ErrUnknownOperation) Unwrap() error { return ErrNotFound }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, graph.ErrUnknownElement) || errors.Is(err, snapshot.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Argument normalization.
	if errors.Is(err, attribute.ErrUnknownType) || errors.Is(err, attribute.ErrDuplicateAttribute) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
