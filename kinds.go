package binstruct

// ScalarKind names a fixed-width integer type.
// Use these names in struct tags: `bin:"int16"`
type ScalarKind string

const (
	KindInt8   ScalarKind = "int8"
	KindUint8  ScalarKind = "uint8"
	KindInt16  ScalarKind = "int16"
	KindUint16 ScalarKind = "uint16"
	KindInt32  ScalarKind = "int32"
	KindUint32 ScalarKind = "uint32"
	KindInt64  ScalarKind = "int64"
	KindUint64 ScalarKind = "uint64"
)

// KindChar is the tag name of fixed-size text buffers: `bin:"char[12]"`
const KindChar = "char"

// scalarWidths contains all valid scalar kinds and their width in bytes.
var scalarWidths = map[ScalarKind]int{
	KindInt8:   1,
	KindUint8:  1,
	KindInt16:  2,
	KindUint16: 2,
	KindInt32:  4,
	KindUint32: 4,
	KindInt64:  8,
	KindUint64: 8,
}

// IsValidScalarKind returns true if the name is a known scalar kind.
func IsValidScalarKind(k ScalarKind) bool {
	_, ok := scalarWidths[k]
	return ok
}

// Width returns the packed size of the kind in bytes, or 0 if unknown.
func (k ScalarKind) Width() int {
	return scalarWidths[k]
}

// Signed reports whether the kind is a signed integer.
func (k ScalarKind) Signed() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
	return false
}

// Scalar returns a packer for the kind.
func (k ScalarKind) Scalar() *ScalarPacker {
	switch k {
	case KindInt8:
		return Int8()
	case KindUint8:
		return Uint8()
	case KindInt16:
		return Int16()
	case KindUint16:
		return Uint16()
	case KindInt32:
		return Int32()
	case KindUint32:
		return Uint32()
	case KindInt64:
		return Int64()
	case KindUint64:
		return Uint64()
	}
	return nil
}
