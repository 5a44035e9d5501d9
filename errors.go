package binstruct

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrDecode indicates bytes could not be turned into a value: the source
	// ran short, or the bytes do not represent the target type.
	ErrDecode = errors.New("decode")

	// ErrEncode indicates a value could not be turned into bytes: out of
	// range, too long for its buffer, unset, or an incomplete array.
	ErrEncode = errors.New("encode")

	// ErrTypeMismatch indicates a value is not an instance of the expected
	// nested schema.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrRequest indicates an invalid call, such as a batch count below one.
	ErrRequest = errors.New("invalid request")

	// ErrUnknownField indicates a field name that the schema does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidSchema indicates a schema declaration that cannot be built.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")
)

// PackError is the failure of a single packer.
// It wraps ErrDecode, ErrEncode or ErrTypeMismatch.
type PackError struct {
	Err    error  // Underlying sentinel error
	Packer string // Packer description, e.g. "int32" or "char[12]"
	Msg    string // Root cause
	Cause  error  // Underlying I/O or charset error, if any
}

func (e *PackError) Error() string {
	if e.Packer != "" {
		return fmt.Sprintf("%s: %s %s", e.Err.Error(), e.Packer, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Msg)
}

func (e *PackError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// ElementError tags a failure with the zero-based array element it came from.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// FieldError wraps any packing failure with the qualified name of the field
// that caused it. It is the error type returned by schema and instance
// operations.
type FieldError struct {
	Field string // Qualified field name, e.g. "Point.y"
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Path returns the chain of qualified field names from the outermost field
// down to the field that failed, following nested FieldErrors.
func (e *FieldError) Path() []string {
	path := []string{e.Field}
	var inner *FieldError
	err := e.Err
	for errors.As(err, &inner) {
		path = append(path, inner.Field)
		err = inner.Err
	}
	return path
}

// RequestError reports an invalid call, raised before any I/O takes place.
type RequestError struct {
	Err error // ErrRequest
	Msg string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Msg)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// SchemaError represents a schema declaration error.
// It wraps a sentinel error with the schema and field it refers to.
type SchemaError struct {
	Err    error  // ErrInvalidSchema or ErrInvalidTag
	Schema string // Schema or Go type name
	Field  string // Field name, if any
	Msg    string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Schema != "" {
		b.WriteString(" ")
		b.WriteString(e.Schema)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func decodeErrf(packer, format string, args ...any) error {
	return &PackError{Err: ErrDecode, Packer: packer, Msg: fmt.Sprintf(format, args...)}
}

func encodeErrf(packer, format string, args ...any) error {
	return &PackError{Err: ErrEncode, Packer: packer, Msg: fmt.Sprintf(format, args...)}
}

func ioErr(sentinel error, packer string, cause error) error {
	return &PackError{Err: sentinel, Packer: packer, Msg: cause.Error(), Cause: cause}
}

func mismatchErrf(packer, format string, args ...any) error {
	return &PackError{Err: ErrTypeMismatch, Packer: packer, Msg: fmt.Sprintf(format, args...)}
}

func newElementError(i int, err error) error {
	return &ElementError{Index: i, Err: err}
}

func newFieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

func requestErrf(format string, args ...any) error {
	return &RequestError{Err: ErrRequest, Msg: fmt.Sprintf(format, args...)}
}

func schemaErrf(sentinel error, schema, field, format string, args ...any) error {
	return &SchemaError{Err: sentinel, Schema: schema, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// asDecode reclassifies an assignment failure of freshly decoded data as a
// decode error while keeping the original cause in the message.
func asDecode(err error) error {
	if errors.Is(err, ErrDecode) {
		return err
	}
	return &PackError{Err: ErrDecode, Msg: fmt.Sprintf("invalid data: %v", err)}
}
