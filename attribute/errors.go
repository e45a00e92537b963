package attribute

import (
	"errors"
	"fmt"
)

var (
	// ErrConversion is the sentinel behind *ConversionError.
	ErrConversion = errors.New("attribute conversion failed")

	// ErrUnknownType is returned for unregistered type names or kinds.
	ErrUnknownType = errors.New("unknown attribute type")

	// ErrUnsupportedVersion is returned when persisted data was written by
	// a type version without a registered decoder.
	ErrUnsupportedVersion = errors.New("unsupported attribute type version")

	// ErrDuplicateAttribute is returned when an attribute name is reused for
	// the same element type.
	ErrDuplicateAttribute = errors.New("attribute already exists")

	// ErrCorrupt is returned for undecodable column bytes.
	ErrCorrupt = errors.New("corrupt attribute column")
)

// ConversionError reports an input whose representation is not accepted by
// an attribute type. It is always recoverable: callers choose between the
// default value and propagation.
type ConversionError struct {
	Type   string
	Input  any
	Reason string
	cause  error
}

func (e *ConversionError) Error() string {
	var in string
	if s, ok := e.Input.(string); ok {
		in = fmt.Sprintf("%q", s)
	} else {
		in = fmt.Sprintf("value of type %T", e.Input)
	}
	if e.Reason == "" {
		return fmt.Sprintf("convert %s to %s", in, e.Type)
	}
	return fmt.Sprintf("convert %s to %s: %s", in, e.Type, e.Reason)
}

func (e *ConversionError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrConversion, e.cause}
	}
	return []error{ErrConversion}
}
