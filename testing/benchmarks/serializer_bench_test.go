package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/binstruct"
	"github.com/zoobzio/binstruct/json"
	bintest "github.com/zoobzio/binstruct/testing"
)

func BenchmarkSchema_Dump(b *testing.B) {
	p, _ := bintest.PointSchema(b).New(1, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Bytes()
	}
}

func BenchmarkSchema_Load(b *testing.B) {
	schema := bintest.PointSchema(b)
	data := []byte("\x01\x00\x00\x00\x02\x00\x00\x00")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = schema.Load(data)
	}
}

func BenchmarkSchema_LoadN_Nested(b *testing.B) {
	schema := bintest.OuterSchema(b)
	data := make([]byte, 52*16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = schema.LoadN(data, 16)
	}
}

func BenchmarkProcessor_Store(b *testing.B) {
	proc, _ := binstruct.NewProcessor[bintest.Header]()
	hdr := bintest.SampleHeader()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Store(context.Background(), &hdr)
	}
}

func BenchmarkProcessor_Load(b *testing.B) {
	proc, _ := binstruct.NewProcessor[bintest.Header]()
	hdr := bintest.SampleHeader()
	data, _ := proc.Store(context.Background(), &hdr)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Load(context.Background(), data)
	}
}

func BenchmarkTranscoder_JSON(b *testing.B) {
	p, _ := bintest.PointSchema(b).New(1, 2)
	tc := json.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc, _ := tc.Marshal(p)
		_ = tc.Unmarshal(doc, p)
	}
}
