package binstruct

var _ Cloner[*Instance] = (*Instance)(nil)

// Clone returns a deep copy of the instance. Arrays and nested records are
// copied; the schema is shared.
func (inst *Instance) Clone() *Instance {
	if inst == nil {
		return nil
	}
	c := &Instance{schema: inst.schema, slots: make([]any, len(inst.slots))}
	for i, v := range inst.slots {
		c.slots[i] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case []any:
		if x == nil {
			return x
		}
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = cloneValue(item)
		}
		return out
	case *Instance:
		return x.Clone()
	default:
		return v
	}
}
