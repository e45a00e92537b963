package operator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSignature is the sentinel behind *UnsupportedSignatureError.
	ErrUnsupportedSignature = errors.New("unsupported operation signature")

	// ErrDivisionByZero is the sentinel behind *ArithmeticError.
	ErrDivisionByZero = errors.New("integer division by zero")

	// ErrDuplicateSignature is returned when a signature is registered twice.
	ErrDuplicateSignature = errors.New("duplicate operation signature")
)

// UnsupportedSignatureError indicates that no implementation is registered
// for an operand pair, even after promotion.
type UnsupportedSignatureError struct {
	Operation string
	Left      Kind
	Right     Kind
}

func (e *UnsupportedSignatureError) Error() string {
	return fmt.Sprintf("operation %s has no implementation for (%s, %s)", e.Operation, e.Left, e.Right)
}

func (e *UnsupportedSignatureError) Unwrap() error { return ErrUnsupportedSignature }

// ArithmeticError reports an integer division-like operation with a zero
// divisor.
type ArithmeticError struct {
	Operation string
	Kind      Kind
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Operation, e.Kind, ErrDivisionByZero)
}

func (e *ArithmeticError) Unwrap() error { return ErrDivisionByZero }
