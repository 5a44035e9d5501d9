package binstruct

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// TextPacker packs strings into a fixed-size byte buffer using a text
// encoding. Short text is padded with NUL bytes; text whose encoding does
// not fit is an error, never truncated.
type TextPacker struct {
	size      int
	enc       encoding.Encoding
	charset   string
	terminate bool
	def       string
	err       error
}

// TextOption configures a TextPacker.
type TextOption func(*TextPacker)

// WithCharset selects the text encoding by IANA name, e.g. "latin1",
// "ISO-8859-1", "windows-1252" or "UTF-16LE".
func WithCharset(name string) TextOption {
	return func(p *TextPacker) {
		enc, err := ianaindex.IANA.Encoding(name)
		if err == nil && enc == nil {
			err = fmt.Errorf("charset %q is not supported", name)
		}
		if err != nil {
			p.err = err
			return
		}
		p.enc = enc
		p.charset = name
	}
}

// WithEncoding uses enc for the text, reported as name in descriptions.
func WithEncoding(name string, enc encoding.Encoding) TextOption {
	return func(p *TextPacker) {
		if enc == nil {
			p.err = fmt.Errorf("nil encoding %q", name)
			return
		}
		p.enc = enc
		p.charset = name
	}
}

// WithText sets the default value of the field.
func WithText(s string) TextOption {
	return func(p *TextPacker) {
		p.def = s
	}
}

// KeepZeros turns off termination at the first NUL: decoding keeps embedded
// NULs and strips only the trailing ones.
func KeepZeros() TextOption {
	return func(p *TextPacker) {
		p.terminate = false
	}
}

// Char returns a packer for a text buffer of size bytes. The default
// encoding is UTF-8 and decoding stops at the first NUL.
func Char(size int, opts ...TextOption) *TextPacker {
	p := &TextPacker{
		size:      size,
		enc:       unicode.UTF8,
		charset:   "utf-8",
		terminate: true,
	}
	if size < 1 {
		p.err = fmt.Errorf("char size must be positive, got %d", size)
	}
	p.apply(opts)
	return p
}

// With returns a copy of the packer with opts applied.
func (p *TextPacker) With(opts ...TextOption) *TextPacker {
	c := *p
	c.apply(opts)
	return &c
}

func (p *TextPacker) apply(opts []TextOption) {
	for _, opt := range opts {
		opt(p)
	}
	if p.err == nil && p.def != "" {
		if _, err := p.encode(p.def); err != nil {
			p.err = err
		}
	}
}

// Charset returns the name of the text encoding.
func (p *TextPacker) Charset() string {
	return p.charset
}

// TerminatesAtFirstZero reports the decode policy.
func (p *TextPacker) TerminatesAtFirstZero() bool {
	return p.terminate
}

func (p *TextPacker) String() string {
	return fmt.Sprintf("%s[%d]", KindChar, p.size)
}

func (p *TextPacker) configErr() error {
	if p.err != nil {
		return errors.Join(ErrInvalidSchema, p.err)
	}
	return nil
}

func (p *TextPacker) Size(any) int {
	return p.size
}

func (p *TextPacker) Default() any {
	return p.def
}

func (p *TextPacker) Validate(v any) error {
	_, err := p.Coerce(v)
	return err
}

// Coerce accepts a string or a byte slice holding text.
func (p *TextPacker) Coerce(v any) (any, error) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		return nil, encodeErrf(p.String(), "cannot hold value of type %T", v)
	}
	if _, err := p.encode(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *TextPacker) Unpack(r *Reader) (any, error) {
	if p.size < 1 {
		return nil, decodeErrf(p.String(), "invalid size")
	}
	raw, err := r.Next(p.size)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, decodeErrf(p.String(), "needs %d bytes, got %d", p.size, len(raw))
		}
		return nil, ioErr(ErrDecode, p.String(), err)
	}
	return p.decode(raw)
}

func (p *TextPacker) Pack(w *Writer, v any) error {
	cv, err := p.Coerce(v)
	if err != nil {
		return err
	}
	buf, err := p.encode(cv.(string))
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return ioErr(ErrEncode, p.String(), err)
	}
	return nil
}

func (p *TextPacker) decode(raw []byte) (string, error) {
	out, err := p.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &PackError{Err: ErrDecode, Packer: p.String(), Msg: fmt.Sprintf("%s: %v", p.charset, err), Cause: err}
	}
	s := string(out)
	if p.terminate {
		if i := strings.IndexByte(s, 0); i >= 0 {
			return s[:i], nil
		}
		return s, nil
	}
	return strings.TrimRight(s, "\x00"), nil
}

// encode returns exactly size bytes.
func (p *TextPacker) encode(s string) ([]byte, error) {
	if p.size < 1 {
		return nil, encodeErrf(p.String(), "invalid size")
	}
	out, err := p.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, &PackError{Err: ErrEncode, Packer: p.String(), Msg: fmt.Sprintf("%s: %v", p.charset, err), Cause: err}
	}
	if len(out) > p.size {
		return nil, encodeErrf(p.String(), "text %q needs %d bytes", s, len(out))
	}
	buf := make([]byte, p.size)
	copy(buf, out)
	return buf, nil
}
