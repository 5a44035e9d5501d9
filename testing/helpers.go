// Package testing provides test utilities for binstruct.
package testing

import (
	"testing"

	"github.com/zoobzio/binstruct"
)

// PointSchema returns Point(x int32 = 5, y int32 = 6), packed.
func PointSchema(tb testing.TB) *binstruct.Schema {
	tb.Helper()
	s, err := binstruct.NewSchema("Point").
		Field("x", binstruct.Int32().WithDefault(5)).
		Field("y", binstruct.Int32().WithDefault(6)).
		Build()
	if err != nil {
		tb.Fatalf("PointSchema: %v", err)
	}
	return s
}

// InnerSchema returns A(a int8, b char[6]) aligned to 8 bytes: 16 bytes.
func InnerSchema(tb testing.TB) *binstruct.Schema {
	tb.Helper()
	s, err := binstruct.NewSchema("A", binstruct.Align(8)).
		Field("a", binstruct.Int8()).
		Field("b", binstruct.Char(6)).
		Build()
	if err != nil {
		tb.Fatalf("InnerSchema: %v", err)
	}
	return s
}

// OuterSchema returns B(items A[3], tail int8) aligned to 4 bytes, where A
// is InnerSchema: 52 bytes.
func OuterSchema(tb testing.TB) *binstruct.Schema {
	tb.Helper()
	s, err := binstruct.NewSchema("B", binstruct.Align(4)).
		Field("items", binstruct.Array(3, InnerSchema(tb))).
		Field("tail", binstruct.Int8()).
		Build()
	if err != nil {
		tb.Fatalf("OuterSchema: %v", err)
	}
	return s
}

// Header is a tagged Go struct exercising every field mapping.
type Header struct {
	Magic   uint32
	Name    string `bin:"char[12],charset=latin1"`
	Counts  [3]int16
	Version int       `bin:"uint8"`
	Origin  Coord     `bin:",align=4"`
	Labels  [2]string `bin:"char[4]"`
	Cache   string    `bin:"-"`
}

// Clone implements binstruct.Cloner[Header].
func (h Header) Clone() Header { return h }

// Coord is nested in Header.
type Coord struct {
	X int16
	Y int16
}

// SampleHeader returns a Header with every packed field set.
func SampleHeader() Header {
	return Header{
		Magic:   0xCAFEBABE,
		Name:    "café",
		Counts:  [3]int16{1, -2, 3},
		Version: 7,
		Origin:  Coord{X: -1, Y: 2},
		Labels:  [2]string{"ab", "cdef"},
	}
}
