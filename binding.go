package binstruct

import "reflect"

// converter moves one Go value in and out of its instance representation.
type converter interface {
	toValue(rv reflect.Value) (any, error)
	fromValue(v any, rv reflect.Value) error
}

// structBinding ties a Go struct type to the schema derived from it.
type structBinding struct {
	schema *Schema
	fields []fieldBinding
}

// fieldBinding describes how to move a single struct field.
type fieldBinding struct {
	index []int  // reflect.Value.FieldByIndex access path
	name  string // schema field name
	slot  int    // instance slot
	conv  converter
}

func (b *structBinding) toValue(rv reflect.Value) (any, error) {
	inst := b.schema.defaults()
	if err := b.fill(inst, rv); err != nil {
		return nil, err
	}
	return inst, nil
}

// fill copies the struct held by rv into inst.
func (b *structBinding) fill(inst *Instance, rv reflect.Value) error {
	for _, fb := range b.fields {
		f := b.schema.fields[fb.slot]
		v, err := fb.conv.toValue(rv.FieldByIndex(fb.index))
		if err != nil {
			return newFieldError(f.qualified, err)
		}
		if err := inst.set(f, v); err != nil {
			return err
		}
	}
	return nil
}

func (b *structBinding) fromValue(v any, rv reflect.Value) error {
	inst, ok := v.(*Instance)
	if !ok || inst == nil {
		return mismatchErrf(b.schema.name, "%s is not a record", describeValue(v))
	}
	return b.extract(inst, rv)
}

// extract copies inst into the struct held by rv. Unset slots leave the Go
// field at its zero value.
func (b *structBinding) extract(inst *Instance, rv reflect.Value) error {
	if inst.schema != b.schema {
		return mismatchErrf(b.schema.name, "instance of %s", inst.schema.name)
	}
	for _, fb := range b.fields {
		f := b.schema.fields[fb.slot]
		if err := fb.conv.fromValue(inst.slots[fb.slot], rv.FieldByIndex(fb.index)); err != nil {
			return newFieldError(f.qualified, err)
		}
	}
	return nil
}

type intConverter struct{}

func (intConverter) toValue(rv reflect.Value) (any, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	default:
		return rv.Uint(), nil
	}
}

func (intConverter) fromValue(v any, rv reflect.Value) error {
	if v == nil {
		rv.SetZero()
		return nil
	}
	x := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		switch x.Kind() {
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i = x.Int()
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := x.Uint()
			if u > 1<<63-1 {
				return mismatchErrf(rv.Type().String(), "cannot hold value %d", u)
			}
			i = int64(u)
		default:
			return mismatchErrf(rv.Type().String(), "%s is not an integer", describeValue(v))
		}
		if rv.OverflowInt(i) {
			return mismatchErrf(rv.Type().String(), "cannot hold value %d", i)
		}
		rv.SetInt(i)
	default:
		var u uint64
		switch x.Kind() {
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u = x.Uint()
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i := x.Int()
			if i < 0 {
				return mismatchErrf(rv.Type().String(), "cannot hold value %d", i)
			}
			u = uint64(i)
		default:
			return mismatchErrf(rv.Type().String(), "%s is not an integer", describeValue(v))
		}
		if rv.OverflowUint(u) {
			return mismatchErrf(rv.Type().String(), "cannot hold value %d", u)
		}
		rv.SetUint(u)
	}
	return nil
}

type textConverter struct{}

func (textConverter) toValue(rv reflect.Value) (any, error) {
	return rv.String(), nil
}

func (textConverter) fromValue(v any, rv reflect.Value) error {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			rv.SetString("")
			return nil
		}
		return mismatchErrf(rv.Type().String(), "%s is not text", describeValue(v))
	}
	rv.SetString(s)
	return nil
}

type arrayConverter struct {
	elem converter
}

func (c arrayConverter) toValue(rv reflect.Value) (any, error) {
	out := make([]any, rv.Len())
	for i := range out {
		v, err := c.elem.toValue(rv.Index(i))
		if err != nil {
			return nil, newElementError(i, err)
		}
		out[i] = v
	}
	return out, nil
}

func (c arrayConverter) fromValue(v any, rv reflect.Value) error {
	items, ok := v.([]any)
	if !ok {
		return mismatchErrf(rv.Type().String(), "%s is not an array", describeValue(v))
	}
	if len(items) != rv.Len() {
		return mismatchErrf(rv.Type().String(), "needs %d values, got %d", rv.Len(), len(items))
	}
	for i, item := range items {
		if err := c.elem.fromValue(item, rv.Index(i)); err != nil {
			return newElementError(i, err)
		}
	}
	return nil
}

var (
	_ converter = (*structBinding)(nil)
	_ converter = intConverter{}
	_ converter = textConverter{}
	_ converter = arrayConverter{}
)

