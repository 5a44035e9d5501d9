package binstruct

// Values returns the instance as plain data: a map from field name to value
// where nested records are maps and arrays are []any. Scalars keep their
// canonical Go type and unset scalars are nil. The result shares nothing
// with the instance.
func (inst *Instance) Values() map[string]any {
	out := make(map[string]any, len(inst.slots))
	for i, f := range inst.schema.fields {
		out[f.name] = plain(inst.slots[i])
	}
	return out
}

func plain(v any) any {
	switch x := v.(type) {
	case *Instance:
		return x.Values()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

// SetValues assigns plain data, as produced by Values or a document
// decoder, to the instance. Names the schema does not declare are rejected
// before anything is assigned. Nested maps update a copy of the nested
// record. The first failing field aborts the assignment; fields assigned
// before the failure keep their new values.
func (inst *Instance) SetValues(vals map[string]any) error {
	for name := range vals {
		if _, ok := inst.schema.index[name]; !ok {
			return newFieldError(inst.schema.name+"."+name, ErrUnknownField)
		}
	}
	for _, f := range inst.schema.fields {
		v, ok := vals[f.name]
		if !ok {
			continue
		}
		cv, err := fromPlain(f.packer, inst.slots[f.index], v)
		if err != nil {
			return newFieldError(f.qualified, err)
		}
		if err := inst.set(f, cv); err != nil {
			return err
		}
	}
	return nil
}

// fromPlain rebuilds nested records from maps, using cur as the starting
// point so that partial documents keep the values they do not mention.
func fromPlain(p Packer, cur, v any) (any, error) {
	switch pk := p.(type) {
	case *StructPacker:
		m, ok := v.(map[string]any)
		if !ok {
			return v, nil
		}
		base, ok := cur.(*Instance)
		if ok && base != nil && base.schema == pk.schema {
			base = base.Clone()
		} else {
			base = pk.schema.defaults()
		}
		if err := base.SetValues(m); err != nil {
			return nil, err
		}
		return base, nil
	case *ArrayPacker:
		items, ok := v.([]any)
		if !ok {
			return v, nil
		}
		curItems, _ := cur.([]any)
		out := make([]any, len(items))
		for i, item := range items {
			var c any
			if i < len(curItems) {
				c = curItems[i]
			}
			cv, err := fromPlain(pk.elem, c, item)
			if err != nil {
				return nil, newElementError(i, err)
			}
			out[i] = cv
		}
		return out, nil
	default:
		return v, nil
	}
}
