package binstruct

import (
	"fmt"
	"reflect"
)

// ArrayPacker packs a fixed number of elements that share one packer.
// Values are stored as []any of exactly Count elements.
type ArrayPacker struct {
	elem  Packer
	count int
	err   error
}

// Array returns a packer for count elements of elem, which is resolved like
// a field type: a Packer or a *Schema.
func Array(count int, elem any) *ArrayPacker {
	p, err := Resolve(elem)
	if err == nil {
		err = checkConfig(p)
	}
	if err == nil && count < 1 {
		err = schemaErrf(ErrInvalidSchema, "", "", "array count must be positive, got %d", count)
	}
	return &ArrayPacker{elem: p, count: count, err: err}
}

// Elem returns the element packer.
func (a *ArrayPacker) Elem() Packer {
	return a.elem
}

// Count returns the number of elements.
func (a *ArrayPacker) Count() int {
	return a.count
}

func (a *ArrayPacker) String() string {
	base, dims := declarator(a)
	return base + dims
}

// declarator splits a packer description C-style, so that an array of 2
// arrays of 3 int8 reads "int8[2][3]" and an array of 3 char[12] reads
// "char[3][12]".
func declarator(p Packer) (base, dims string) {
	switch t := p.(type) {
	case *ArrayPacker:
		if t.elem == nil {
			return "?", fmt.Sprintf("[%d]", t.count)
		}
		b, d := declarator(t.elem)
		return b, fmt.Sprintf("[%d]", t.count) + d
	case *TextPacker:
		return KindChar, fmt.Sprintf("[%d]", t.size)
	default:
		return p.String(), ""
	}
}

func (a *ArrayPacker) configErr() error {
	return a.err
}

func (a *ArrayPacker) Default() any {
	out := make([]any, a.count)
	for i := range out {
		out[i] = a.elem.Default()
	}
	return out
}

func (a *ArrayPacker) Size(v any) int {
	items, ok := sequence(v)
	if !ok {
		return a.count * a.elem.Size(nil)
	}
	n := 0
	for _, item := range items {
		n += a.elem.Size(item)
	}
	return n
}

func (a *ArrayPacker) Validate(v any) error {
	_, err := a.Coerce(v)
	return err
}

// Coerce accepts any slice or Go array of Count elements and returns a new
// []any holding the coerced elements.
func (a *ArrayPacker) Coerce(v any) (any, error) {
	items, ok := sequence(v)
	if !ok {
		return nil, encodeErrf(a.String(), "cannot hold value of type %T", v)
	}
	if len(items) < a.count {
		return nil, encodeErrf(a.String(), "incomplete array: needed %d values, present %d values", a.count, len(items))
	}
	if len(items) > a.count {
		return nil, encodeErrf(a.String(), "wrong array size: needed %d values, present %d values", a.count, len(items))
	}
	out := make([]any, a.count)
	for i, item := range items {
		cv, err := a.elem.Coerce(item)
		if err != nil {
			return nil, newElementError(i, err)
		}
		out[i] = cv
	}
	return out, nil
}

func (a *ArrayPacker) Unpack(r *Reader) (any, error) {
	out := make([]any, a.count)
	for i := range out {
		v, err := a.elem.Unpack(r)
		if err != nil {
			return nil, newElementError(i, err)
		}
		out[i] = v
	}
	return out, nil
}

func (a *ArrayPacker) Pack(w *Writer, v any) error {
	items, ok := sequence(v)
	if !ok {
		return encodeErrf(a.String(), "cannot hold value of type %T", v)
	}
	if len(items) < a.count {
		return encodeErrf(a.String(), "incomplete array: needed %d values, present %d values", a.count, len(items))
	}
	if len(items) > a.count {
		return encodeErrf(a.String(), "wrong array size: needed %d values, present %d values", a.count, len(items))
	}
	for i, item := range items {
		if err := a.elem.Pack(w, item); err != nil {
			return newElementError(i, err)
		}
	}
	return nil
}

// sequence views a slice or Go array as []any. Strings are not sequences.
func sequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case []any:
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
