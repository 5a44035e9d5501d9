package binstruct

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_PackUnpack(t *testing.T) {
	p := Array(3, Int16())
	got := packValue(t, p, []any{1, 2, 3})
	assert.Equal(t, []byte{1, 0, 2, 0, 3, 0}, got)
	assert.Equal(t, 6, p.Size(nil))

	v, err := p.Unpack(NewReader(bytes.NewReader(got)))
	require.NoError(t, err)
	assert.Equal(t, []any{int16(1), int16(2), int16(3)}, v)
}

func TestArray_AcceptsGoArraysAndSlices(t *testing.T) {
	p := Array(2, Uint8())
	for _, v := range []any{[2]int{1, 2}, []uint8{1, 2}, []int64{1, 2}} {
		cv, err := p.Coerce(v)
		require.NoError(t, err)
		assert.Equal(t, []any{uint8(1), uint8(2)}, cv)
	}

	_, err := p.Coerce("ab")
	assert.ErrorIs(t, err, ErrEncode)
}

func TestArray_WrongSize(t *testing.T) {
	p := Array(3, Int8())

	_, err := p.Coerce([]any{1, 2, 3, 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong array size: needed 3 values, present 4 values")

	_, err = p.Coerce([]any{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncode)
	assert.Contains(t, err.Error(), "incomplete array: needed 3 values, present 2 values")

	err = p.Pack(NewWriter(&bytes.Buffer{}), []any{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncode)
	assert.Contains(t, err.Error(), "incomplete array: needed 3 values, present 2 values")
}

func TestArray_ElementError(t *testing.T) {
	_, err := Array(4, Int8()).Coerce([]any{1, 2, 3, ""})
	require.Error(t, err)

	var elemErr *ElementError
	require.True(t, errors.As(err, &elemErr))
	assert.Equal(t, 3, elemErr.Index)
	assert.ErrorIs(t, err, ErrEncode)
}

func TestArray_UnsetElementAtPack(t *testing.T) {
	err := Array(2, Int8()).Pack(NewWriter(&bytes.Buffer{}), []any{int8(1), nil})
	require.Error(t, err)
	assert.Equal(t, "element 1: encode: int8 value not set", err.Error())
}

func TestArray_DefaultsAreIndependent(t *testing.T) {
	inner := NewSchema("Inner").Field("v", Int8().WithDefault(1)).MustBuild()
	p := Array(2, inner)

	d := p.Default().([]any)
	require.NoError(t, d[0].(*Instance).Set("v", 9))

	v, err := d[1].(*Instance).Int("v")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	again := p.Default().([]any)
	v, err = again[0].(*Instance).Int("v")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestArray_ScalarDefaultsAreIndependent(t *testing.T) {
	s := NewSchema("S").Field("v", Array(4, Int8().WithDefault(5))).MustBuild()
	inst, err := s.New()
	require.NoError(t, err)

	items, err := inst.Array("v")
	require.NoError(t, err)
	assert.Equal(t, []any{int8(5), int8(5), int8(5), int8(5)}, items)

	items[0] = int8(1)
	assert.Equal(t, "S(v = [1, 5, 5, 5])", inst.String())

	other, err := s.New()
	require.NoError(t, err)
	assert.Equal(t, "S(v = [5, 5, 5, 5])", other.String())
}

func TestArray_String(t *testing.T) {
	assert.Equal(t, "int8[2][3]", Array(2, Array(3, Int8())).String())
	assert.Equal(t, "char[3][12]", Array(3, Char(12)).String())
	assert.Equal(t, "uint16[4]", Array(4, Uint16()).String())
	assert.Equal(t, "?[2]", Array(2, Struct(nil)).String())
	assert.Equal(t, "?", Struct(nil).String())
}

func TestArray_InvalidConfig(t *testing.T) {
	assert.ErrorIs(t, checkConfig(Array(0, Int8())), ErrInvalidSchema)
	assert.ErrorIs(t, checkConfig(Array(2, "int8")), ErrInvalidSchema)
	assert.ErrorIs(t, checkConfig(Array(2, Char(0))), ErrInvalidSchema)
	assert.NoError(t, checkConfig(Array(2, Char(4))))
}
