package binstruct

import (
	"context"
	"errors"
)

// Schema is an ordered list of typed fields plus a struct-wide alignment
// unit. It defines both a record's logical fields and its packed layout.
//
// Schemas are immutable once built and safe for concurrent use.
type Schema struct {
	name   string
	align  int
	fields []*Field
	index  map[string]int
	ctor   Constructor
}

// Field is a named slot of a schema bound to a packer.
type Field struct {
	name      string
	qualified string
	index     int
	packer    Packer
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Qualified returns the name prefixed with the schema name, e.g. "Point.x".
func (f *Field) Qualified() string { return f.qualified }

// Index returns the position of the field in declaration order.
func (f *Field) Index() int { return f.index }

// Packer returns the packer of the field.
func (f *Field) Packer() Packer { return f.packer }

// Constructor replaces positional argument assignment in Schema.New.
// It runs after every field has been set to its default.
type Constructor func(inst *Instance, args ...any) error

// SchemaOption configures a schema under construction.
type SchemaOption func(*Builder)

// Align sets the alignment unit in bytes. Every field, and the record
// itself, is followed by zero padding up to a multiple of n bytes from the
// start of the record. The default is 1 (packed).
func Align(n int) SchemaOption {
	return func(b *Builder) {
		b.align = n
	}
}

// Builder declares a schema field by field, in layout order.
type Builder struct {
	name   string
	align  int
	fields []*Field
	index  map[string]int
	ctor   Constructor
	errs   []error
}

// NewSchema starts the declaration of a schema.
//
//	point, err := binstruct.NewSchema("Point").
//	    Field("x", binstruct.Int32().WithDefault(5)).
//	    Field("y", binstruct.Int32().WithDefault(6)).
//	    Build()
func NewSchema(name string, opts ...SchemaOption) *Builder {
	b := &Builder{
		name:  name,
		align: 1,
		index: make(map[string]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Field appends a field. typ is a Packer, or a *Schema for a nested record.
func (b *Builder) Field(name string, typ any) *Builder {
	if name == "" {
		b.errs = append(b.errs, schemaErrf(ErrInvalidSchema, b.name, "", "field %d has no name", len(b.fields)))
		return b
	}
	if _, dup := b.index[name]; dup {
		b.errs = append(b.errs, schemaErrf(ErrInvalidSchema, b.name, name, "duplicate field"))
		return b
	}
	p, err := Resolve(typ)
	if err == nil {
		err = checkConfig(p)
	}
	if err != nil {
		b.errs = append(b.errs, &SchemaError{Err: ErrInvalidSchema, Schema: b.name, Field: name, Msg: stripSentinel(err)})
		return b
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, &Field{
		name:      name,
		qualified: b.name + "." + name,
		index:     len(b.fields),
		packer:    p,
	})
	return b
}

// Constructor registers a custom constructor used by Schema.New.
func (b *Builder) Constructor(fn Constructor) *Builder {
	b.ctor = fn
	return b
}

// Build validates the declaration and returns the schema.
func (b *Builder) Build() (*Schema, error) {
	errs := append([]error{}, b.errs...)
	if b.name == "" {
		errs = append(errs, schemaErrf(ErrInvalidSchema, "", "", "schema has no name"))
	}
	if b.align < 1 {
		errs = append(errs, schemaErrf(ErrInvalidSchema, b.name, "", "alignment must be positive, got %d", b.align))
	}
	for _, f := range b.fields {
		if err := f.packer.Validate(f.packer.Default()); err != nil {
			errs = append(errs, schemaErrf(ErrInvalidSchema, b.name, f.name, "invalid default: %v", err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	s := &Schema{
		name:   b.name,
		align:  b.align,
		fields: make([]*Field, len(b.fields)),
		index:  make(map[string]int, len(b.index)),
		ctor:   b.ctor,
	}
	for i, f := range b.fields {
		c := *f
		s.fields[i] = &c
		s.index[f.name] = i
	}

	emitSchemaBuilt(context.Background(), s.name, len(s.fields), s.align)
	return s, nil
}

// MustBuild is like Build but panics on error. It simplifies the
// declaration of package-level schemas.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Alignment returns the alignment unit in bytes.
func (s *Schema) Alignment() int {
	return s.align
}

// NumField returns the number of fields.
func (s *Schema) NumField() int {
	return len(s.fields)
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []*Field {
	return append([]*Field(nil), s.fields...)
}

// Field returns the named field.
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

func (s *Schema) lookup(name string) (*Field, error) {
	f, ok := s.Field(name)
	if !ok {
		return nil, newFieldError(s.name+"."+name, ErrUnknownField)
	}
	return f, nil
}

// New returns an instance with every field set to its default. The args are
// then handed to the schema's Constructor, or, without one, assigned to the
// fields in declaration order. Fewer args than fields is allowed.
func (s *Schema) New(args ...any) (*Instance, error) {
	inst := s.defaults()
	if s.ctor != nil {
		if err := s.ctor(inst, args...); err != nil {
			return nil, err
		}
		return inst, nil
	}
	if len(args) > len(s.fields) {
		return nil, requestErrf("%s has %d fields, got %d arguments", s.name, len(s.fields), len(args))
	}
	for i, arg := range args {
		if err := inst.set(s.fields[i], arg); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// defaults returns a fresh instance holding each field's default. Build
// has already validated the defaults, so they are stored as is.
func (s *Schema) defaults() *Instance {
	inst := &Instance{schema: s, slots: make([]any, len(s.fields))}
	for i, f := range s.fields {
		inst.slots[i] = f.packer.Default()
	}
	return inst
}

func (s *Schema) defaultSize() int {
	return s.defaults().ByteSize()
}

// stripSentinel drops a leading "invalid schema" wrapper so that nested
// declaration errors are not reported twice.
func stripSentinel(err error) string {
	var se *SchemaError
	if errors.As(err, &se) && se.Schema == "" && se.Field == "" {
		return se.Msg
	}
	msg := err.Error()
	prefix := ErrInvalidSchema.Error() + "\n"
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
