package binstruct

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for binstruct events.
var (
	SignalSchemaBuilt      = capitan.NewSignal("binstruct.schema.built", "Schema declared")
	SignalProcessorCreated = capitan.NewSignal("binstruct.processor.created", "Processor instantiated")
	SignalLoadStart        = capitan.NewSignal("binstruct.load.start", "Load operation beginning")
	SignalLoadComplete     = capitan.NewSignal("binstruct.load.complete", "Load operation finished")
	SignalStoreStart       = capitan.NewSignal("binstruct.store.start", "Store operation beginning")
	SignalStoreComplete    = capitan.NewSignal("binstruct.store.complete", "Store operation finished")
)

// Keys for typed event data.
var (
	KeySchema      = capitan.NewStringKey("schema")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyFields      = capitan.NewIntKey("fields")
	KeyAlign       = capitan.NewIntKey("align")
	KeySize        = capitan.NewIntKey("size")
	KeyCount       = capitan.NewIntKey("count")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitSchemaBuilt emits an event when a schema is built.
func emitSchemaBuilt(ctx context.Context, schema string, fields, align int) {
	capitan.Emit(ctx, SignalSchemaBuilt,
		KeySchema.Field(schema),
		KeyFields.Field(fields),
		KeyAlign.Field(align),
	)
}

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, typeName, schema string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(ContentType),
		KeyTypeName.Field(typeName),
		KeySchema.Field(schema),
	)
}

// emitLoadStart emits an event when load begins.
func emitLoadStart(ctx context.Context, typeName string, size int) {
	capitan.Emit(ctx, SignalLoadStart,
		KeyContentType.Field(ContentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
	)
}

// emitLoadComplete emits an event when load finishes.
func emitLoadComplete(ctx context.Context, typeName string, count int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(ContentType),
		KeyTypeName.Field(typeName),
		KeyCount.Field(count),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalLoadComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalLoadComplete, fields...)
	}
}

// emitStoreStart emits an event when store begins.
func emitStoreStart(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalStoreStart,
		KeyContentType.Field(ContentType),
		KeyTypeName.Field(typeName),
	)
}

// emitStoreComplete emits an event when store finishes.
func emitStoreComplete(ctx context.Context, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(ContentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalStoreComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalStoreComplete, fields...)
	}
}
