package binstruct

// StructPacker packs a nested record. Values are *Instance bound to the
// nested schema.
type StructPacker struct {
	schema *Schema
}

// Struct returns a packer for instances of s.
func Struct(s *Schema) *StructPacker {
	return &StructPacker{schema: s}
}

// Schema returns the nested schema.
func (p *StructPacker) Schema() *Schema {
	return p.schema
}

func (p *StructPacker) String() string {
	if p.schema == nil {
		return "?"
	}
	return p.schema.Name()
}

func (p *StructPacker) configErr() error {
	if p.schema == nil {
		return schemaErrf(ErrInvalidSchema, "", "", "nil nested schema")
	}
	return nil
}

// Size is the nested byte size including the nested schema's own padding.
// A value that is not an instance of the schema is sized by its default.
func (p *StructPacker) Size(v any) int {
	if inst, ok := v.(*Instance); ok && inst != nil && inst.schema == p.schema {
		return inst.ByteSize()
	}
	return p.schema.defaultSize()
}

func (p *StructPacker) Default() any {
	return p.schema.defaults()
}

func (p *StructPacker) Validate(v any) error {
	_, err := p.Coerce(v)
	return err
}

// Coerce accepts an *Instance of the nested schema. The instance itself is
// stored, not a copy.
func (p *StructPacker) Coerce(v any) (any, error) {
	inst, ok := v.(*Instance)
	if !ok || inst == nil {
		return nil, mismatchErrf(p.String(), "value %v is not an instance of %s", v, p.schema.Name())
	}
	if inst.schema != p.schema {
		return nil, mismatchErrf(p.String(), "value %s is not an instance of %s", inst, p.schema.Name())
	}
	return inst, nil
}

func (p *StructPacker) Unpack(r *Reader) (any, error) {
	inst := p.schema.defaults()
	if err := inst.reload(r); err != nil {
		return nil, err
	}
	return inst, nil
}

func (p *StructPacker) Pack(w *Writer, v any) error {
	inst, err := p.Coerce(v)
	if err != nil {
		return err
	}
	return inst.(*Instance).dump(w)
}
