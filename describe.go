package binstruct

import (
	"fmt"
	"reflect"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the layout tag with sentinel
	sentinel.Tag(tagName)
}

// Describe derives a schema from the exported fields of struct type T, in
// declaration order. Field types map as follows:
//
//	int8 ... uint64     scalar of the same kind, or the kind named by the tag
//	int, uint           scalar of the kind named by the tag, e.g. bin:"int32"
//	string              text buffer named by the tag, e.g. bin:"char[12]"
//	[N]T                array of N elements of T's packer
//	struct              nested record (bin:",align=N" sets its alignment)
//
// A field tagged bin:"-" is skipped. The schema is named after the type
// unless WithName says otherwise.
func Describe[T any](opts ...ProcessorOption) (*Schema, error) {
	b, err := describe[T](newProcessorConfig(opts))
	if err != nil {
		return nil, err
	}
	return b.schema, nil
}

func describe[T any](cfg processorConfig) (*structBinding, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, schemaErrf(ErrInvalidTag, rt.String(), "", "%s is not a struct", rt.Kind())
	}
	meta := sentinel.Scan[T]()
	name := cfg.name
	if name == "" {
		name = meta.TypeName
	}
	d := &describer{nested: make(map[nestedKey]*structBinding)}
	return d.build(rt, meta, name, cfg.align)
}

// describer builds the schema and the reflect binding of a Go struct in one
// pass. Nested types are built once per alignment so that every field of
// that type shares one schema.
type describer struct {
	nested map[nestedKey]*structBinding
}

type nestedKey struct {
	typ   reflect.Type
	align int
}

func (d *describer) build(rt reflect.Type, meta sentinel.Metadata, name string, align int) (*structBinding, error) {
	sb := NewSchema(name, Align(align))
	bind := &structBinding{}
	for _, fm := range meta.Fields {
		sf := rt.FieldByIndex(fm.Index)
		if !sf.IsExported() {
			continue
		}
		tag, ok := fm.Tags[tagName]
		if !ok {
			tag = sf.Tag.Get(tagName)
		}
		ft, err := parseTag(tag)
		if err != nil {
			return nil, schemaErrf(ErrInvalidTag, name, sf.Name, "%v", err)
		}
		if ft.skip {
			continue
		}
		fieldName := sf.Name
		if ft.name != "" {
			fieldName = ft.name
		}
		p, conv, err := d.field(fm.ReflectType, ft, align)
		if err != nil {
			return nil, schemaErrf(ErrInvalidTag, name, sf.Name, "%v", err)
		}
		sb.Field(fieldName, p)
		bind.fields = append(bind.fields, fieldBinding{
			index: fm.Index,
			name:  fieldName,
			slot:  len(bind.fields),
			conv:  conv,
		})
	}
	s, err := sb.Build()
	if err != nil {
		return nil, err
	}
	bind.schema = s
	return bind, nil
}

// field maps a Go field type to a packer and a converter.
func (d *describer) field(rt reflect.Type, ft fieldTag, align int) (Packer, converter, error) {
	var goDims []int
	leaf := rt
	for leaf.Kind() == reflect.Array {
		goDims = append(goDims, leaf.Len())
		leaf = leaf.Elem()
	}
	dims := goDims
	if len(ft.dims) > 0 {
		if !equalDims(ft.dims, goDims) {
			return nil, nil, fmt.Errorf("tag dimensions %v do not match Go type %s", ft.dims, rt)
		}
	}

	var (
		p    Packer
		conv converter
	)
	switch {
	case leaf.Kind() == reflect.Struct:
		if ft.kind != "" {
			return nil, nil, fmt.Errorf("struct field cannot have type %q", ft.kind)
		}
		nestedAlign := align
		if ft.align > 0 {
			nestedAlign = ft.align
		}
		nb, err := d.nestedBinding(leaf, nestedAlign)
		if err != nil {
			return nil, nil, err
		}
		p, conv = Struct(nb.schema), nb
	case leaf.Kind() == reflect.String:
		if ft.kind != KindChar {
			return nil, nil, fmt.Errorf("string field needs a char type, e.g. bin:\"char[16]\"")
		}
		p, conv = ft.packer(), textConverter{}
	case isIntKind(leaf.Kind()):
		if ft.kind == "" {
			k, ok := goScalarKinds[leaf.Kind()]
			if !ok {
				return nil, nil, fmt.Errorf("%s has no fixed width, name a kind, e.g. bin:\"int32\"", leaf)
			}
			ft.kind = string(k)
		}
		if ft.kind == KindChar {
			return nil, nil, fmt.Errorf("integer field cannot have type char")
		}
		p, conv = ft.packer(), intConverter{}
	default:
		return nil, nil, fmt.Errorf("unsupported field type %s", rt)
	}
	if ft.align > 0 && leaf.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("option align needs a struct field")
	}

	for i := len(dims) - 1; i >= 0; i-- {
		p = Array(dims[i], p)
		conv = arrayConverter{elem: conv}
	}
	return p, conv, nil
}

func (d *describer) nestedBinding(rt reflect.Type, align int) (*structBinding, error) {
	key := nestedKey{typ: rt, align: align}
	if b, ok := d.nested[key]; ok {
		return b, nil
	}
	meta := scanNestedType(rt)
	if meta == nil {
		return nil, fmt.Errorf("cannot scan %s", rt)
	}
	name := meta.TypeName
	if name == "" {
		name = rt.String()
	}
	b, err := d.build(rt, *meta, name, align)
	if err != nil {
		return nil, err
	}
	d.nested[key] = b
	return b, nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return &meta
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if val, ok := sf.Tag.Lookup(tagName); ok {
			fm.Tags[tagName] = val
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return &meta
}

var goScalarKinds = map[reflect.Kind]ScalarKind{
	reflect.Int8:   KindInt8,
	reflect.Uint8:  KindUint8,
	reflect.Int16:  KindInt16,
	reflect.Uint16: KindUint16,
	reflect.Int32:  KindInt32,
	reflect.Uint32: KindUint32,
	reflect.Int64:  KindInt64,
	reflect.Uint64: KindUint64,
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func equalDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
