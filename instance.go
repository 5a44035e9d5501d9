package binstruct

import (
	"fmt"
	"strings"
)

// Instance is a live record of a schema: one slot per field.
//
// Instances are not safe for concurrent mutation. Concurrent reads of an
// instance that is not being modified are safe.
type Instance struct {
	schema *Schema
	slots  []any
}

// Schema returns the schema the instance belongs to.
func (inst *Instance) Schema() *Schema {
	return inst.schema
}

// Get returns the value of the named field. Unset scalars are nil, arrays
// are []any and nested records are *Instance.
//
// The []any of an array field is returned as stored: elements changed in
// place are only validated when the instance is dumped.
func (inst *Instance) Get(name string) (any, error) {
	f, err := inst.schema.lookup(name)
	if err != nil {
		return nil, err
	}
	return inst.slots[f.index], nil
}

// Set validates v against the field's packer and stores it. A rejected
// value leaves the field untouched.
func (inst *Instance) Set(name string, v any) error {
	f, err := inst.schema.lookup(name)
	if err != nil {
		return err
	}
	return inst.set(f, v)
}

func (inst *Instance) set(f *Field, v any) error {
	cv, err := f.packer.Coerce(v)
	if err != nil {
		return newFieldError(f.qualified, err)
	}
	inst.slots[f.index] = cv
	return nil
}

// Int returns a signed or unsigned integer field as int64.
func (inst *Instance) Int(name string) (int64, error) {
	v, err := inst.Get(name)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x <= 1<<63-1 {
			return int64(x), nil
		}
		return 0, inst.typeErr(name, fmt.Sprintf("value %d overflows int64", x))
	}
	return 0, inst.typeErr(name, describeValue(v)+" is not an integer")
}

// Uint returns a non-negative integer field as uint64.
func (inst *Instance) Uint(name string) (uint64, error) {
	v, err := inst.Get(name)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case uint8:
		return uint64(x), nil
	case uint16:
		return uint64(x), nil
	case uint32:
		return uint64(x), nil
	case uint64:
		return x, nil
	}
	i, err := inst.Int(name)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, inst.typeErr(name, fmt.Sprintf("value %d is negative", i))
	}
	return uint64(i), nil
}

// Text returns a text field.
func (inst *Instance) Text(name string) (string, error) {
	v, err := inst.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", inst.typeErr(name, describeValue(v)+" is not text")
	}
	return s, nil
}

// Struct returns a nested record field.
func (inst *Instance) Struct(name string) (*Instance, error) {
	v, err := inst.Get(name)
	if err != nil {
		return nil, err
	}
	sub, ok := v.(*Instance)
	if !ok {
		return nil, inst.typeErr(name, describeValue(v)+" is not a record")
	}
	return sub, nil
}

// Array returns an array field as stored.
func (inst *Instance) Array(name string) ([]any, error) {
	v, err := inst.Get(name)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, inst.typeErr(name, describeValue(v)+" is not an array")
	}
	return items, nil
}

func (inst *Instance) typeErr(name, msg string) error {
	return newFieldError(inst.schema.name+"."+name, &PackError{Err: ErrTypeMismatch, Msg: msg})
}

func describeValue(v any) string {
	if v == nil {
		return "unset value"
	}
	return fmt.Sprintf("value of type %T", v)
}

// String renders the instance as Name(field = value, ...).
func (inst *Instance) String() string {
	if inst == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(inst.schema.name)
	b.WriteByte('(')
	for i, f := range inst.schema.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.name)
		b.WriteString(" = ")
		writeValue(&b, inst.slots[i])
	}
	b.WriteByte(')')
	return b.String()
}

func writeValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("<unset>")
	case string:
		fmt.Fprintf(b, "%q", x)
	case []any:
		b.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, item)
		}
		b.WriteByte(']')
	case *Instance:
		b.WriteString(x.String())
	default:
		fmt.Fprintf(b, "%v", x)
	}
}
