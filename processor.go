package binstruct

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// ProcessorOption configures the schema a Processor derives from its type.
type ProcessorOption func(*processorConfig)

type processorConfig struct {
	name  string
	align int
}

func newProcessorConfig(opts []ProcessorOption) processorConfig {
	cfg := processorConfig{align: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithAlign sets the alignment unit of the derived schema. Nested structs
// inherit it unless their field says otherwise with bin:",align=N".
func WithAlign(n int) ProcessorOption {
	return func(c *processorConfig) {
		c.align = n
	}
}

// WithName names the derived schema. The default is the Go type name.
func WithName(name string) ProcessorOption {
	return func(c *processorConfig) {
		c.name = name
	}
}

// Processor packs and unpacks Go structs of type T through the schema
// described by their `bin` struct tags. Use Load for ingress and Store for
// egress.
//
// Processors are immutable after construction and safe for concurrent use.
type Processor[T any] struct {
	binding  *structBinding
	typeName string
}

var _ Codec = (*Processor[struct{}])(nil)

// NewProcessor creates a new Processor for type T.
func NewProcessor[T any](opts ...ProcessorOption) (*Processor[T], error) {
	b, err := describe[T](newProcessorConfig(opts))
	if err != nil {
		return nil, err
	}
	p := &Processor[T]{
		binding:  b,
		typeName: reflect.TypeFor[T]().String(),
	}

	emitProcessorCreated(context.Background(), p.typeName, b.schema.name)
	return p, nil
}

// Schema returns the schema derived from T.
func (p *Processor[T]) Schema() *Schema {
	return p.binding.schema
}

// ContentType returns the MIME type of packed records.
func (p *Processor[T]) ContentType() string {
	return ContentType
}

// Load unpacks one record from data. Trailing bytes are ignored.
func (p *Processor[T]) Load(ctx context.Context, data []byte) (*T, error) {
	start := time.Now()
	emitLoadStart(ctx, p.typeName, len(data))

	var retErr error
	defer func() {
		count := 1
		if retErr != nil {
			count = 0
		}
		emitLoadComplete(ctx, p.typeName, count, time.Since(start), retErr)
	}()

	inst, err := p.binding.schema.Load(data)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	obj, err := p.FromInstance(inst)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	return obj, nil
}

// LoadN unpacks n consecutive records from data.
func (p *Processor[T]) LoadN(ctx context.Context, data []byte, n int) ([]*T, error) {
	start := time.Now()
	emitLoadStart(ctx, p.typeName, len(data))

	var (
		retErr error
		out    []*T
	)
	defer func() {
		emitLoadComplete(ctx, p.typeName, len(out), time.Since(start), retErr)
	}()

	insts, err := p.binding.schema.LoadN(data, n)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	objs := make([]*T, 0, len(insts))
	for i, inst := range insts {
		obj, err := p.FromInstance(inst)
		if err != nil {
			retErr = fmt.Errorf("record %d: %w", i, err)
			return nil, retErr
		}
		objs = append(objs, obj)
	}
	out = objs
	return out, nil
}

// Store packs obj. The original is never mutated.
func (p *Processor[T]) Store(ctx context.Context, obj *T) ([]byte, error) {
	start := time.Now()
	emitStoreStart(ctx, p.typeName)

	var (
		retErr  error
		retData []byte
	)
	defer func() {
		emitStoreComplete(ctx, p.typeName, len(retData), time.Since(start), retErr)
	}()

	inst, err := p.ToInstance(obj)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	retData, retErr = inst.Bytes()
	return retData, retErr
}

// ToInstance copies obj into a new instance of the schema, validating every
// field on the way.
func (p *Processor[T]) ToInstance(obj *T) (*Instance, error) {
	if obj == nil {
		return nil, requestErrf("nil %s", p.typeName)
	}
	inst := p.binding.schema.defaults()

	// Check for override interface
	if _, ok := any(obj).(PackOverride); ok {
		clone := *obj
		if c, ok := any(*obj).(Cloner[T]); ok {
			clone = c.Clone()
		}
		if err := any(&clone).(PackOverride).PackInstance(inst); err != nil {
			return nil, fmt.Errorf("pack override: %w", err)
		}
		return inst, nil
	}

	if err := p.binding.fill(inst, reflect.ValueOf(obj).Elem()); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromInstance copies inst into a new T.
func (p *Processor[T]) FromInstance(inst *Instance) (*T, error) {
	if inst == nil {
		return nil, requestErrf("nil instance")
	}
	var obj T

	// Check for override interface
	if u, ok := any(&obj).(UnpackOverride); ok {
		if inst.schema != p.binding.schema {
			return nil, mismatchErrf(p.binding.schema.name, "instance of %s", inst.schema.name)
		}
		if err := u.UnpackInstance(inst); err != nil {
			return nil, fmt.Errorf("unpack override: %w", err)
		}
		return &obj, nil
	}

	if err := p.binding.extract(inst, reflect.ValueOf(&obj).Elem()); err != nil {
		return nil, err
	}
	return &obj, nil
}

// Marshal packs v, which must be a T or a *T.
func (p *Processor[T]) Marshal(v any) ([]byte, error) {
	switch x := v.(type) {
	case *T:
		return p.Store(context.Background(), x)
	case T:
		return p.Store(context.Background(), &x)
	default:
		return nil, requestErrf("cannot marshal %T as %s", v, p.typeName)
	}
}

// Unmarshal unpacks data into v, which must be a *T.
func (p *Processor[T]) Unmarshal(data []byte, v any) error {
	dst, ok := v.(*T)
	if !ok || dst == nil {
		return requestErrf("cannot unmarshal %s into %T", p.typeName, v)
	}
	obj, err := p.Load(context.Background(), data)
	if err != nil {
		return err
	}
	*dst = *obj
	return nil
}
