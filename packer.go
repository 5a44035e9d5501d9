package binstruct

// Packer converts one logical value type to and from a fixed-size byte range.
//
// Packers are immutable configuration values and hold no state about the
// values they process, so one packer may be shared by any number of fields
// and schemas.
type Packer interface {
	// Unpack reads one value from r.
	Unpack(r *Reader) (any, error)

	// Pack writes v to w.
	Pack(w *Writer, v any) error

	// Size returns the packed size of v in bytes.
	Size(v any) int

	// Default returns a freshly initialized default value.
	Default() any

	// Validate reports whether v may be stored in a field using this packer.
	Validate(v any) error

	// Coerce validates v and converts it to the packer's canonical
	// representation.
	Coerce(v any) (any, error)

	// String describes the packer, e.g. "int32" or "char[12]".
	String() string
}

// Resolve turns a field type into a Packer: a Packer is used as is and a
// *Schema is wrapped in a struct packer.
func Resolve(typ any) (Packer, error) {
	switch t := typ.(type) {
	case *Schema:
		if t == nil {
			return nil, schemaErrf(ErrInvalidSchema, "", "", "nil schema")
		}
		return Struct(t), nil
	case Packer:
		return t, nil
	case nil:
		return nil, schemaErrf(ErrInvalidSchema, "", "", "nil field type")
	default:
		return nil, schemaErrf(ErrInvalidSchema, "", "", "argument has incorrect type %T", typ)
	}
}

// configurable is implemented by packers whose construction may have failed.
type configurable interface {
	configErr() error
}

func checkConfig(p Packer) error {
	if c, ok := p.(configurable); ok {
		return c.configErr()
	}
	return nil
}
