package solabi

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseType parses a canonical type name such as "uint256", "bytes32[2][]" or
// "(address,uint256)[]". The "tuple" keyword takes its fields from components,
// as found in JSON ABI descriptions. The aliases "int" and "uint" mean 256 bits.
func ParseType(typ string, components ...Parameter) (Type, error) {
	t, err := parseType(strings.TrimSpace(typ), components)
	if err != nil {
		return Type{}, fmt.Errorf("%w: type %q: %v", ErrMalformedDescription, typ, err)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(typ string, components ...Parameter) Type {
	t, err := ParseType(typ, components...)
	if err != nil {
		panic(err)
	}
	return t
}

func parseType(s string, components []Parameter) (Type, error) {
	if s == "" {
		return Type{}, fmt.Errorf("empty type")
	}
	// Array suffixes bind to the right: T[2][] is a slice of T[2].
	if strings.HasSuffix(s, "]") {
		open := strings.LastIndex(s, "[")
		if open < 0 {
			return Type{}, fmt.Errorf("unbalanced brackets")
		}
		elem, err := parseType(s[:open], components)
		if err != nil {
			return Type{}, err
		}
		dim := s[open+1 : len(s)-1]
		if dim == "" {
			return SliceType(elem), nil
		}
		n, ok := parseSize(dim)
		if !ok {
			return Type{}, fmt.Errorf("invalid array length %q", dim)
		}
		return ArrayType(elem, n), nil
	}
	if strings.HasPrefix(s, "(") {
		return parseTupleLiteral(s)
	}
	if s == "tuple" {
		return NamedTupleType(components...), nil
	}
	return parseElementary(s)
}

func parseElementary(s string) (Type, error) {
	switch s {
	case "bool":
		return BoolType(), nil
	case "address":
		return AddressType(), nil
	case "string":
		return StringType(), nil
	case "bytes":
		return BytesType(), nil
	case "int":
		return IntType(256), nil
	case "uint":
		return UintType(256), nil
	}

	for _, prefix := range []string{"uint", "int", "bytes"} {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		n, ok := parseSize(s[len(prefix):])
		if !ok {
			return Type{}, fmt.Errorf("unsupported type")
		}
		switch prefix {
		case "bytes":
			if n < 1 || n > WordSize {
				return Type{}, fmt.Errorf("invalid fixed bytes size %d", n)
			}
			return FixedBytesType(n), nil
		default:
			if n < 8 || n > 256 || n%8 != 0 {
				return Type{}, fmt.Errorf("invalid integer size %d", n)
			}
			if prefix == "int" {
				return IntType(n), nil
			}
			return UintType(n), nil
		}
	}
	return Type{}, fmt.Errorf("unsupported type")
}

// parseSize accepts only the canonical decimal spelling of a size: ASCII
// digits without sign or leading zero.
func parseSize(s string) (int, bool) {
	if s == "" || s[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// parseTupleLiteral parses "(T1,T2,...)" without any trailing array suffix.
func parseTupleLiteral(s string) (Type, error) {
	if !strings.HasSuffix(s, ")") {
		return Type{}, fmt.Errorf("unbalanced parentheses")
	}
	inner := s[1 : len(s)-1]
	if inner == "" {
		return TupleType(), nil
	}

	var (
		fields []Type
		depth  int
		start  int
	)
	for i := 0; i <= len(inner); i++ {
		if i < len(inner) {
			switch inner[i] {
			case '(':
				depth++
				continue
			case ')':
				depth--
				if depth < 0 {
					return Type{}, fmt.Errorf("unbalanced parentheses")
				}
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		field, err := parseType(strings.TrimSpace(inner[start:i]), nil)
		if err != nil {
			return Type{}, err
		}
		fields = append(fields, field)
		start = i + 1
	}
	if depth != 0 {
		return Type{}, fmt.Errorf("unbalanced parentheses")
	}
	return TupleType(fields...), nil
}
