// Package binstruct declares binary record layouts and packs them to and
// from bytes.
//
// A Schema is an ordered list of typed fields plus an alignment unit. The
// same declaration defines both the logical record (an Instance with one
// slot per field) and its packed layout: fields are written back to back in
// declaration order, each followed by zero padding up to the next multiple
// of the alignment unit, counted from the start of the record.
//
// # Packers
//
// Every field is bound to a Packer:
//
//   - Int8 ... Uint64 - fixed-width little-endian integers
//   - Char(n, opts...) - text in an n-byte NUL-padded buffer, any charset
//     known to golang.org/x/text (WithCharset("latin1"), ...)
//   - Array(n, elem) - exactly n elements of another packer
//   - Struct(schema), or the *Schema itself - a nested record
//
// # Basic Usage
//
//	point := binstruct.NewSchema("Point").
//	    Field("x", binstruct.Int32().WithDefault(5)).
//	    Field("y", binstruct.Int32().WithDefault(6)).
//	    MustBuild()
//
//	p, _ := point.New(1)                      // Point(x = 1, y = 6)
//	data, _ := p.Bytes()                      // 01 00 00 00 06 00 00 00
//	q, _ := point.Load(data)                  // read one
//	all, _ := point.LoadN(bytes.NewReader(b), 3) // read a batch
//
// # Struct Tags
//
// Go structs can describe their own layout:
//
//	type Header struct {
//	    Magic   uint32
//	    Name    string   `bin:"char[16],charset=latin1"`
//	    Counts  [4]int16
//	    Version int      `bin:"uint8"`
//	    Cache   string   `bin:"-"`
//	}
//
//	proc, _ := binstruct.NewProcessor[Header](binstruct.WithAlign(4))
//	data, _ := proc.Store(ctx, &hdr)
//	hdr2, _ := proc.Load(ctx, data)
//
// # Errors
//
// Every failure of a schema or instance operation is a *FieldError naming
// the field, e.g. "field Point.y: decode: int32 needs 4 bytes, got 2".
// Use errors.Is with ErrDecode, ErrEncode, ErrTypeMismatch, ErrRequest,
// ErrUnknownField, ErrInvalidSchema or ErrInvalidTag to classify them.
//
// # Transcoders
//
// The following document formats are available as subpackages:
//
//   - json - JSON documents (application/json)
//   - yaml - YAML documents (application/yaml)
//   - msgpack - MessagePack documents (application/msgpack)
package binstruct

// ContentType is the MIME type of packed binary records.
const ContentType = "application/octet-stream"

// Cloner allows types to provide deep copy logic.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. Processor uses it to hand a private copy
// to PackOverride implementations.
//
// For simple value types with no pointers, slices, or maps, Clone can simply
// return the receiver value:
//
//	func (h Header) Clone() Header { return h }
type Cloner[T any] interface {
	Clone() T
}

// Codec provides content-type aware marshaling. Processor implements it for
// packed binary records, so it can stand in wherever a Codec is accepted.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Transcoder moves an instance between its packed layout and a
// self-describing document format.
type Transcoder interface {
	// ContentType returns the MIME type of the document format.
	ContentType() string

	// Marshal encodes the instance's values as a document.
	Marshal(inst *Instance) ([]byte, error)

	// Unmarshal assigns the values of a document to the instance. Fields
	// absent from the document keep their current values.
	Unmarshal(data []byte, inst *Instance) error
}

// Override interfaces allow types to bypass reflection-based binding.
// When a type implements one of these interfaces, the Processor calls the
// interface method instead of copying fields by reflection.
//
// The instance handed over still validates every Set, so an override cannot
// produce bytes the schema would reject.

// PackOverride bypasses reflection when a Processor stores a value.
type PackOverride interface {
	// PackInstance copies the receiver's fields into inst, which starts out
	// holding the schema defaults. If the type implements Cloner, the
	// receiver is a clone, so mutations are safe.
	PackInstance(inst *Instance) error
}

// UnpackOverride bypasses reflection when a Processor loads a value.
type UnpackOverride interface {
	// UnpackInstance copies the fields of a freshly loaded inst into the
	// receiver.
	UnpackInstance(inst *Instance) error
}
