package binstruct

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackError_Is(t *testing.T) {
	err := decodeErrf("int32", "needs %d bytes, got %d", 4, 2)

	assert.ErrorIs(t, err, ErrDecode)
	assert.NotErrorIs(t, err, ErrEncode)
}

func TestPackError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with packer",
			err:  encodeErrf("char[3]", "text %q needs %d bytes", "abcd", 4),
			want: `encode: char[3] text "abcd" needs 4 bytes`,
		},
		{
			name: "without packer",
			err:  &PackError{Err: ErrDecode, Msg: "invalid data"},
			want: "decode: invalid data",
		},
		{
			name: "type mismatch",
			err:  mismatchErrf("Point", "value is not an instance of Point"),
			want: "type mismatch: Point value is not an instance of Point",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPackError_Cause(t *testing.T) {
	err := ioErr(ErrDecode, "int8", io.ErrClosedPipe)

	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestFieldError_Message(t *testing.T) {
	err := newFieldError("Point.y", decodeErrf("int32", "needs 4 bytes, got 2"))

	assert.Equal(t, "field Point.y: decode: int32 needs 4 bytes, got 2", err.Error())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFieldError_Path(t *testing.T) {
	inner := newFieldError("A.b", encodeErrf("char[6]", "value not set"))
	outer := &FieldError{Field: "B.items", Err: newElementError(2, inner)}

	assert.Equal(t, []string{"B.items", "A.b"}, outer.Path())
	assert.Equal(t, "field B.items: element 2: field A.b: encode: char[6] value not set", outer.Error())
}

func TestRequestError(t *testing.T) {
	err := requestErrf("count should be > 0, got %d", 0)

	assert.ErrorIs(t, err, ErrRequest)
	assert.Equal(t, "invalid request: count should be > 0, got 0", err.Error())
}

func TestSchemaError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  schemaErrf(ErrInvalidTag, "Header", "Name", "unknown type %q", "float"),
			want: `invalid tag Header.Name: unknown type "float"`,
		},
		{
			name: "schema only",
			err:  schemaErrf(ErrInvalidSchema, "S", "", "alignment must be positive, got 0"),
			want: "invalid schema S: alignment must be positive, got 0",
		},
		{
			name: "sentinel only",
			err:  &SchemaError{Err: ErrInvalidSchema},
			want: "invalid schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAsDecode(t *testing.T) {
	err := asDecode(encodeErrf("int8", "value 300 out of range [-128, 127]"))
	assert.ErrorIs(t, err, ErrDecode)

	orig := decodeErrf("int8", "needs 1 bytes, got 0")
	assert.Same(t, orig, asDecode(orig))
}

func TestErrorsAs_FieldError(t *testing.T) {
	var err error = newFieldError("Point.x", encodeErrf("int32", "value not set"))

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Point.x", fe.Field)

	var pe *PackError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "int32", pe.Packer)
}
