package binstruct

import (
	"fmt"
	"strconv"
	"strings"
)

// tagName is the struct tag read by Describe.
const tagName = "bin"

// fieldTag is a parsed `bin` struct tag:
//
//	bin:"<type>[,option...]"
//
// The type expression is a scalar kind or char[N], followed by array
// dimensions in C declarator order. It may be empty when the Go type
// already says everything. Options are charset=NAME, keepzeros,
// align=N and name=NAME.
type fieldTag struct {
	skip      bool
	kind      string
	size      int
	dims      []int
	charset   string
	keepZeros bool
	align     int
	name      string
}

func parseTag(tag string) (fieldTag, error) {
	var ft fieldTag
	if tag == "-" {
		ft.skip = true
		return ft, nil
	}
	parts := strings.Split(tag, ",")
	if err := ft.parseType(strings.TrimSpace(parts[0])); err != nil {
		return ft, err
	}
	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)
		key, val, hasVal := strings.Cut(opt, "=")
		switch key {
		case "":
			continue
		case "keepzeros":
			if hasVal {
				return ft, fmt.Errorf("option keepzeros takes no value")
			}
			ft.keepZeros = true
		case "charset":
			if val == "" {
				return ft, fmt.Errorf("option charset needs a value")
			}
			ft.charset = val
		case "align":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return ft, fmt.Errorf("option align needs a positive integer, got %q", val)
			}
			ft.align = n
		case "name":
			if val == "" {
				return ft, fmt.Errorf("option name needs a value")
			}
			ft.name = val
		default:
			return ft, fmt.Errorf("unknown option %q", key)
		}
	}
	if ft.kind != KindChar && (ft.charset != "" || ft.keepZeros) {
		return ft, fmt.Errorf("text options need a char type")
	}
	return ft, nil
}

// parseType splits "char[12][3]" or "int8[2][3]" into kind and brackets.
// For char the last bracket is the buffer size and the others are array
// dimensions.
func (ft *fieldTag) parseType(expr string) error {
	if expr == "" {
		return nil
	}
	base, rest, found := strings.Cut(expr, "[")
	if found {
		rest = "[" + rest
	}
	var brackets []int
	for rest != "" {
		if rest[0] != '[' {
			return fmt.Errorf("malformed type %q", expr)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return fmt.Errorf("malformed type %q", expr)
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil || n < 1 {
			return fmt.Errorf("bad dimension %q in type %q", rest[1:end], expr)
		}
		brackets = append(brackets, n)
		rest = rest[end+1:]
	}
	switch {
	case base == KindChar:
		if len(brackets) == 0 {
			return fmt.Errorf("char needs a size, e.g. char[12]")
		}
		ft.kind = KindChar
		ft.size = brackets[len(brackets)-1]
		ft.dims = brackets[:len(brackets)-1]
	case IsValidScalarKind(ScalarKind(base)):
		ft.kind = base
		ft.dims = brackets
	default:
		return fmt.Errorf("unknown type %q", base)
	}
	return nil
}

// packer builds the leaf packer named by the tag. The tag must name a type.
func (ft fieldTag) packer() Packer {
	if ft.kind == KindChar {
		var opts []TextOption
		if ft.charset != "" {
			opts = append(opts, WithCharset(ft.charset))
		}
		if ft.keepZeros {
			opts = append(opts, KeepZeros())
		}
		return Char(ft.size, opts...)
	}
	return ScalarKind(ft.kind).Scalar()
}
