package binstruct

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadding(t *testing.T) {
	tests := []struct {
		off   int64
		align int
		want  int
	}{
		{0, 1, 0},
		{7, 1, 0},
		{1, 4, 3},
		{4, 4, 0},
		{14, 8, 2},
		{49, 4, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, padding(tt.off, tt.align), "padding(%d, %d)", tt.off, tt.align)
	}
}

func TestReader_Position(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("abcdef")))
	assert.Same(t, r, NewReader(r))

	b, err := r.Next(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), b)
	require.NoError(t, r.Skip(1))
	assert.Equal(t, int64(3), r.Pos())

	b, err = r.Next(5)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, []byte("def"), b)

	require.NoError(t, r.Skip(4), "missing trailing padding is tolerated")
}

func TestWriter_Position(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, err := w.Write([]byte("ab"))
	require.NoError(t, err)
	require.NoError(t, w.Zeros(2))
	assert.Equal(t, int64(4), w.Pos())
	assert.Equal(t, []byte("ab\x00\x00"), buf.Bytes())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestDump_WriterFailure(t *testing.T) {
	p, err := pointSchema(t).New()
	require.NoError(t, err)

	err = p.Dump(failingWriter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncode)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFileRoundTrip(t *testing.T) {
	s := pointSchema(t)
	path := filepath.Join(t.TempDir(), "point.bin")

	p, err := s.New(3, 4)
	require.NoError(t, err)
	require.NoError(t, p.DumpFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x03\x00\x00\x00\x04\x00\x00\x00"), raw)

	loaded, err := s.LoadFile(path, 1)
	require.NoError(t, err)
	assert.Equal(t, "Point(x = 3, y = 4)", loaded[0].String())

	_, err = s.LoadFile(path, 0)
	assert.ErrorIs(t, err, ErrRequest)
	_, err = s.LoadFile(filepath.Join(t.TempDir(), "missing.bin"), 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
