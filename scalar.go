package binstruct

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"reflect"
)

// ScalarPacker packs fixed-width integers in little-endian byte order.
//
// Values are stored as the Go type matching the kind (int8, uint16, int32,
// ...). A nil value means unset: it may be stored but not packed.
type ScalarPacker struct {
	kind ScalarKind
	def  any
	err  error
}

// Int8 returns a signed 8-bit packer with no default.
func Int8() *ScalarPacker { return &ScalarPacker{kind: KindInt8} }

// Uint8 returns an unsigned 8-bit packer with no default.
func Uint8() *ScalarPacker { return &ScalarPacker{kind: KindUint8} }

// Int16 returns a signed 16-bit packer with no default.
func Int16() *ScalarPacker { return &ScalarPacker{kind: KindInt16} }

// Uint16 returns an unsigned 16-bit packer with no default.
func Uint16() *ScalarPacker { return &ScalarPacker{kind: KindUint16} }

// Int32 returns a signed 32-bit packer with no default.
func Int32() *ScalarPacker { return &ScalarPacker{kind: KindInt32} }

// Uint32 returns an unsigned 32-bit packer with no default.
func Uint32() *ScalarPacker { return &ScalarPacker{kind: KindUint32} }

// Int64 returns a signed 64-bit packer with no default.
func Int64() *ScalarPacker { return &ScalarPacker{kind: KindInt64} }

// Uint64 returns an unsigned 64-bit packer with no default.
func Uint64() *ScalarPacker { return &ScalarPacker{kind: KindUint64} }

// WithDefault returns a copy of the packer whose Default is v.
// An unrepresentable v is reported when the schema is built.
func (p *ScalarPacker) WithDefault(v any) *ScalarPacker {
	c := *p
	c.def, c.err = p.Coerce(v)
	if c.err != nil {
		c.def = nil
	}
	return &c
}

// Kind returns the scalar kind.
func (p *ScalarPacker) Kind() ScalarKind {
	return p.kind
}

func (p *ScalarPacker) String() string {
	return string(p.kind)
}

func (p *ScalarPacker) configErr() error {
	if p.err != nil {
		return errors.Join(ErrInvalidSchema, p.err)
	}
	return nil
}

func (p *ScalarPacker) Size(any) int {
	return p.kind.Width()
}

func (p *ScalarPacker) Default() any {
	return p.def
}

func (p *ScalarPacker) Validate(v any) error {
	_, err := p.Coerce(v)
	return err
}

func (p *ScalarPacker) Unpack(r *Reader) (any, error) {
	n := p.kind.Width()
	b, err := r.Next(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, decodeErrf(p.String(), "needs %d bytes, got %d", n, len(b))
		}
		return nil, ioErr(ErrDecode, p.String(), err)
	}
	switch p.kind {
	case KindInt8:
		return int8(b[0]), nil
	case KindUint8:
		return b[0], nil
	case KindInt16:
		return int16(binary.LittleEndian.Uint16(b)), nil
	case KindUint16:
		return binary.LittleEndian.Uint16(b), nil
	case KindInt32:
		return int32(binary.LittleEndian.Uint32(b)), nil
	case KindUint32:
		return binary.LittleEndian.Uint32(b), nil
	case KindInt64:
		return int64(binary.LittleEndian.Uint64(b)), nil
	case KindUint64:
		return binary.LittleEndian.Uint64(b), nil
	}
	return nil, decodeErrf(p.String(), "unknown scalar kind")
}

func (p *ScalarPacker) Pack(w *Writer, v any) error {
	if v == nil {
		return encodeErrf(p.String(), "value not set")
	}
	cv, err := p.Coerce(v)
	if err != nil {
		return err
	}
	var buf [8]byte
	n := p.kind.Width()
	switch x := cv.(type) {
	case int8:
		buf[0] = byte(x)
	case uint8:
		buf[0] = x
	case int16:
		binary.LittleEndian.PutUint16(buf[:], uint16(x))
	case uint16:
		binary.LittleEndian.PutUint16(buf[:], x)
	case int32:
		binary.LittleEndian.PutUint32(buf[:], uint32(x))
	case uint32:
		binary.LittleEndian.PutUint32(buf[:], x)
	case int64:
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
	case uint64:
		binary.LittleEndian.PutUint64(buf[:], x)
	}
	if _, err := w.Write(buf[:n]); err != nil {
		return ioErr(ErrEncode, p.String(), err)
	}
	return nil
}

// Coerce accepts any Go integer kind, including named integer types, and
// converts it to the canonical type of the packer. nil stays nil.
func (p *ScalarPacker) Coerce(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return p.fromInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return p.fromUint(rv.Uint())
	default:
		return nil, encodeErrf(p.String(), "cannot hold value of type %T", v)
	}
}

func (p *ScalarPacker) bounds() (lo int64, hi uint64) {
	bits := uint(p.kind.Width() * 8)
	if p.kind.Signed() {
		return -1 << (bits - 1), 1<<(bits-1) - 1
	}
	if bits == 64 {
		return 0, math.MaxUint64
	}
	return 0, 1<<bits - 1
}

func (p *ScalarPacker) fromInt(i int64) (any, error) {
	lo, hi := p.bounds()
	if i < lo || (i > 0 && uint64(i) > hi) {
		return nil, encodeErrf(p.String(), "value %d out of range [%d, %d]", i, lo, hi)
	}
	return p.box(uint64(i)), nil
}

func (p *ScalarPacker) fromUint(u uint64) (any, error) {
	lo, hi := p.bounds()
	if u > hi {
		return nil, encodeErrf(p.String(), "value %d out of range [%d, %d]", u, lo, hi)
	}
	return p.box(u), nil
}

// box converts two's complement bits to the canonical Go type.
func (p *ScalarPacker) box(bits uint64) any {
	switch p.kind {
	case KindInt8:
		return int8(bits)
	case KindUint8:
		return uint8(bits)
	case KindInt16:
		return int16(bits)
	case KindUint16:
		return uint16(bits)
	case KindInt32:
		return int32(bits)
	case KindUint32:
		return uint32(bits)
	case KindInt64:
		return int64(bits)
	default:
		return bits
	}
}
