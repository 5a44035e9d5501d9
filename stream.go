package binstruct

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader is a position-tracking byte source. Packers read through it so that
// alignment padding can be computed relative to the start of a record.
type Reader struct {
	r   io.Reader
	pos int64
}

// NewReader wraps r. A *Reader passed back in is returned unchanged.
func NewReader(r io.Reader) *Reader {
	if rr, ok := r.(*Reader); ok {
		return rr
	}
	return &Reader{r: r}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.pos += int64(n)
	return n, err
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Next reads exactly n bytes. On a short read it returns the bytes that were
// available together with io.ErrUnexpectedEOF or io.EOF.
func (r *Reader) Next(n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	return buf[:got], err
}

// Skip discards up to n bytes. Running out of input is not an error: the
// trailing padding of the last record may be absent.
func (r *Reader) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, r, int64(n))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Writer is a position-tracking byte sink.
type Writer struct {
	w   io.Writer
	pos int64
}

// NewWriter wraps w. A *Writer passed back in is returned unchanged.
func NewWriter(w io.Writer) *Writer {
	if ww, ok := w.(*Writer); ok {
		return ww
	}
	return &Writer{w: w}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int64 {
	return w.pos
}

// Zeros writes n zero bytes.
func (w *Writer) Zeros(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := w.Write(make([]byte, n))
	return err
}

// reader turns a load source into a *Reader.
func reader(src any) (*Reader, error) {
	switch s := src.(type) {
	case *Reader:
		return s, nil
	case []byte:
		return NewReader(bytes.NewReader(s)), nil
	case io.Reader:
		return NewReader(s), nil
	case nil:
		return nil, requestErrf("nil source")
	default:
		return nil, requestErrf("unsupported source %T", src)
	}
}

// padding returns the number of bytes needed after off to reach the next
// multiple of align.
func padding(off int64, align int) int {
	a := int64(align)
	return int((a - off%a) % a)
}

// LoadFile opens path and loads count consecutive instances from it.
// The file is closed on every return path.
func (s *Schema) LoadFile(path string, count int) (_ []*Instance, err error) {
	if count < 1 {
		return nil, requestErrf("count should be > 0, got %d", count)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return s.LoadN(bufio.NewReader(f), count)
}

// DumpFile writes the packed instance to path, creating or truncating it.
func (inst *Instance) DumpFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()
	bw := bufio.NewWriter(f)
	if err := inst.Dump(bw); err != nil {
		return err
	}
	return bw.Flush()
}
