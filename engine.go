package binstruct

import (
	"bytes"
	"io"
)

// Load reads one instance from src, which may be a []byte, a *Reader or any
// io.Reader. Failures are reported as *FieldError naming the field.
func (s *Schema) Load(src any) (*Instance, error) {
	r, err := reader(src)
	if err != nil {
		return nil, err
	}
	inst := s.defaults()
	if err := inst.reload(r); err != nil {
		return nil, err
	}
	return inst, nil
}

// LoadN reads count consecutive instances from one source. A count below
// one is a *RequestError, reported before src is touched.
func (s *Schema) LoadN(src any, count int) ([]*Instance, error) {
	if count < 1 {
		return nil, requestErrf("count should be > 0, got %d", count)
	}
	r, err := reader(src)
	if err != nil {
		return nil, err
	}
	out := make([]*Instance, 0, count)
	for i := 0; i < count; i++ {
		inst := s.defaults()
		if err := inst.reload(r); err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Reload overwrites every field with values read from src. After a failed
// reload the instance holds a mix of old and new values and should be
// discarded.
func (inst *Instance) Reload(src any) error {
	r, err := reader(src)
	if err != nil {
		return err
	}
	return inst.reload(r)
}

func (inst *Instance) reload(r *Reader) error {
	s := inst.schema
	start := r.Pos()
	for i, f := range s.fields {
		v, err := f.packer.Unpack(r)
		if err != nil {
			return newFieldError(f.qualified, err)
		}
		cv, err := f.packer.Coerce(v)
		if err != nil {
			return newFieldError(f.qualified, asDecode(err))
		}
		inst.slots[i] = cv
		if err := r.Skip(padding(r.Pos()-start, s.align)); err != nil {
			return newFieldError(f.qualified, ioErr(ErrDecode, "padding", err))
		}
	}
	return nil
}

// Dump writes the packed instance to w.
func (inst *Instance) Dump(w io.Writer) error {
	return inst.dump(NewWriter(w))
}

func (inst *Instance) dump(w *Writer) error {
	s := inst.schema
	start := w.Pos()
	for i, f := range s.fields {
		if err := f.packer.Pack(w, inst.slots[i]); err != nil {
			return newFieldError(f.qualified, err)
		}
		if err := w.Zeros(padding(w.Pos()-start, s.align)); err != nil {
			return newFieldError(f.qualified, ioErr(ErrEncode, "padding", err))
		}
	}
	return nil
}

// Bytes returns the packed instance.
func (inst *Instance) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(inst.ByteSize())
	if err := inst.Dump(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ByteSize returns the number of bytes Dump writes, padding included,
// without touching any stream.
func (inst *Instance) ByteSize() int {
	s := inst.schema
	n := 0
	for i, f := range s.fields {
		n += f.packer.Size(inst.slots[i])
		n += padding(int64(n), s.align)
	}
	return n
}

// Zero reloads the instance from ByteSize() zero bytes: integers become 0,
// text becomes empty and nested records are zeroed recursively.
func (inst *Instance) Zero() error {
	return inst.Reload(make([]byte, inst.ByteSize()))
}
