package binstruct

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Hasher performs one-way hashing.
type Hasher interface {
	// Hash returns the hex-encoded hash of data.
	Hash(data []byte) (string, error)
}

// blake2bHasher implements BLAKE2b-256 hashing.
type blake2bHasher struct{}

// Blake2bHasher returns a BLAKE2b-256 hasher.
// The result is a hex-encoded 64-character string.
func Blake2bHasher() Hasher {
	return &blake2bHasher{}
}

func (h *blake2bHasher) Hash(data []byte) (string, error) {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// sha256Hasher implements SHA-256 hashing.
type sha256Hasher struct{}

// SHA256Hasher returns a SHA-256 hasher.
// The result is a hex-encoded 64-character string.
func SHA256Hasher() Hasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Hash(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// sha512Hasher implements SHA-512 hashing.
type sha512Hasher struct{}

// SHA512Hasher returns a SHA-512 hasher.
// The result is a hex-encoded 128-character string.
func SHA512Hasher() Hasher {
	return &sha512Hasher{}
}

func (h *sha512Hasher) Hash(data []byte) (string, error) {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:]), nil
}

// FieldLayout is the placement of one field in a packed default record.
type FieldLayout struct {
	Name    string
	Packer  string
	Offset  int
	Size    int
	Padding int // zero bytes written after the field
}

// Layout returns the placement of every field of a default instance.
// Text and scalar sizes never depend on the value, so the layout holds for
// every instance whose arrays are complete.
func (s *Schema) Layout() []FieldLayout {
	out := make([]FieldLayout, len(s.fields))
	inst := s.defaults()
	off := 0
	for i, f := range s.fields {
		size := f.packer.Size(inst.slots[i])
		pad := padding(int64(off+size), s.align)
		out[i] = FieldLayout{
			Name:    f.name,
			Packer:  f.packer.String(),
			Offset:  off,
			Size:    size,
			Padding: pad,
		}
		off += size + pad
	}
	return out
}

// Fingerprint identifies the packed layout of the schema, nested schemas
// included, as a BLAKE2b-256 hex digest. Two schemas with the same
// fingerprint read and write the same bytes.
func (s *Schema) Fingerprint() string {
	fp, _ := s.FingerprintWith(Blake2bHasher())
	return fp
}

// FingerprintWith is like Fingerprint but uses h.
func (s *Schema) FingerprintWith(h Hasher) (string, error) {
	var b strings.Builder
	s.describeLayout(&b, make(map[*Schema]bool))
	return h.Hash([]byte(b.String()))
}

func (s *Schema) describeLayout(b *strings.Builder, seen map[*Schema]bool) {
	seen[s] = true
	fmt.Fprintf(b, "%s align=%d\n", s.name, s.align)
	for i, l := range s.Layout() {
		fmt.Fprintf(b, "  %s %s @%d +%d pad %d", l.Name, l.Packer, l.Offset, l.Size, l.Padding)
		if text := leafText(s.fields[i].packer); text != nil {
			fmt.Fprintf(b, " %s zeros=%t", text.charset, !text.terminate)
		}
		b.WriteByte('\n')
	}
	for _, f := range s.fields {
		if nested := nestedSchema(f.packer); nested != nil && !seen[nested] {
			nested.describeLayout(b, seen)
		}
	}
}

// nestedSchema returns the schema a packer ultimately packs, if any.
func nestedSchema(p Packer) *Schema {
	for {
		switch x := p.(type) {
		case *StructPacker:
			return x.schema
		case *ArrayPacker:
			p = x.elem
		default:
			return nil
		}
	}
}

func leafText(p Packer) *TextPacker {
	for {
		switch x := p.(type) {
		case *TextPacker:
			return x
		case *ArrayPacker:
			p = x.elem
		default:
			return nil
		}
	}
}
