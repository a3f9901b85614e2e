package solabi

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// tt256 is 2^256, used to undo two's complement on signed words.
var tt256 = new(big.Int).Lsh(big.NewInt(1), 256)

// Kind identifies the variant of a Type.
type Kind uint8

const (
	// IntKind is a signed integer of Size bits.
	IntKind Kind = iota

	// UintKind is an unsigned integer of Size bits.
	UintKind

	// BoolKind is a boolean.
	BoolKind

	// AddressKind is a 20-byte account address.
	AddressKind

	// FixedBytesKind is a byte array of Size bytes (bytes1..bytes32).
	FixedBytesKind

	// BytesKind is a variable-length byte array.
	BytesKind

	// StringKind is a variable-length UTF-8 string.
	StringKind

	// ArrayKind is a fixed-length array of Size elements of Elem.
	ArrayKind

	// SliceKind is a variable-length array of Elem.
	SliceKind

	// TupleKind is an ordered group of Fields.
	TupleKind
)

var kindNames = [...]string{
	IntKind:        "int",
	UintKind:       "uint",
	BoolKind:       "bool",
	AddressKind:    "address",
	FixedBytesKind: "fixed bytes",
	BytesKind:      "bytes",
	StringKind:     "string",
	ArrayKind:      "array",
	SliceKind:      "slice",
	TupleKind:      "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type describes a Solidity type. Types are immutable values; the
// constructors below are the only supported way to build them.
type Type struct {
	Kind Kind

	// Size is the bit width for integers, the byte length for fixed bytes
	// and the element count for fixed arrays. Unused otherwise.
	Size int

	// Elem is the element type of arrays and slices.
	Elem *Type

	// Fields are the member types of a tuple. FieldNames, when set, holds
	// their names in the same order; names never affect the encoding.
	Fields     []Type
	FieldNames []string
}

// IntType returns intN. Panics if bits is not a multiple of 8 in [8, 256].
func IntType(bits int) Type {
	mustIntBits(bits)
	return Type{Kind: IntKind, Size: bits}
}

// UintType returns uintN. Panics if bits is not a multiple of 8 in [8, 256].
func UintType(bits int) Type {
	mustIntBits(bits)
	return Type{Kind: UintKind, Size: bits}
}

// BoolType returns bool.
func BoolType() Type { return Type{Kind: BoolKind} }

// AddressType returns address.
func AddressType() Type { return Type{Kind: AddressKind, Size: AddressSize} }

// FixedBytesType returns bytesN. Panics if n is not in [1, 32].
func FixedBytesType(n int) Type {
	if n < 1 || n > WordSize {
		panic(fmt.Sprintf("solabi: invalid fixed bytes size %d", n))
	}
	return Type{Kind: FixedBytesKind, Size: n}
}

// BytesType returns the dynamic bytes type.
func BytesType() Type { return Type{Kind: BytesKind} }

// StringType returns string.
func StringType() Type { return Type{Kind: StringKind} }

// ArrayType returns elem[n]. Panics if n is not positive.
func ArrayType(elem Type, n int) Type {
	if n < 1 {
		panic(fmt.Sprintf("solabi: invalid array length %d", n))
	}
	return Type{Kind: ArrayKind, Size: n, Elem: &elem}
}

// SliceType returns elem[].
func SliceType(elem Type) Type {
	return Type{Kind: SliceKind, Elem: &elem}
}

// TupleType returns (fields...).
func TupleType(fields ...Type) Type {
	return Type{Kind: TupleKind, Fields: fields}
}

// NamedTupleType returns a tuple whose fields carry the given parameter names.
func NamedTupleType(fields ...Parameter) Type {
	t := Type{Kind: TupleKind, Fields: make([]Type, len(fields)), FieldNames: make([]string, len(fields))}
	for i, f := range fields {
		t.Fields[i] = f.Type
		t.FieldNames[i] = f.Name
	}
	return t
}

func mustIntBits(bits int) {
	if bits < 8 || bits > 256 || bits%8 != 0 {
		panic(fmt.Sprintf("solabi: invalid integer size %d", bits))
	}
}

// String returns the canonical name used in signatures, e.g. uint256[] or (address,bool).
func (t Type) String() string {
	switch t.Kind {
	case IntKind:
		return "int" + strconv.Itoa(t.Size)
	case UintKind:
		return "uint" + strconv.Itoa(t.Size)
	case BoolKind:
		return "bool"
	case AddressKind:
		return "address"
	case FixedBytesKind:
		return "bytes" + strconv.Itoa(t.Size)
	case BytesKind:
		return "bytes"
	case StringKind:
		return "string"
	case ArrayKind:
		return t.Elem.String() + "[" + strconv.Itoa(t.Size) + "]"
	case SliceKind:
		return t.Elem.String() + "[]"
	case TupleKind:
		names := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			names[i] = f.String()
		}
		return "(" + strings.Join(names, ",") + ")"
	default:
		return t.Kind.String()
	}
}

// IsDynamic returns true if the type has a variable-length encoding:
// bytes, string, T[], T[k] for dynamic T, and tuples with a dynamic field.
func (t Type) IsDynamic() bool {
	switch t.Kind {
	case BytesKind, StringKind, SliceKind:
		return true
	case ArrayKind:
		return t.Elem.IsDynamic()
	case TupleKind:
		for _, f := range t.Fields {
			if f.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// HeadSize returns the number of bytes the type occupies in the head of an
// enclosing sequence. Dynamic types take a single offset word; static arrays
// and tuples are laid out in place.
func (t Type) HeadSize() int {
	if t.IsDynamic() {
		return WordSize
	}
	switch t.Kind {
	case ArrayKind:
		return t.Size * t.Elem.HeadSize()
	case TupleKind:
		size := 0
		for _, f := range t.Fields {
			size += f.HeadSize()
		}
		return size
	default:
		return WordSize
	}
}

// Encode encodes a single value. Static types produce exactly HeadSize bytes;
// dynamic types produce their tail (length word and payload, or element block).
func (t Type) Encode(v any) ([]byte, error) {
	switch t.Kind {
	case IntKind, UintKind:
		n, ok := toBigInt(v)
		if !ok {
			return nil, t.mismatch(v)
		}
		if !t.fits(n) {
			return nil, &TypeMismatchError{Expected: t.String(), Got: "out of range value " + n.String()}
		}
		return math.U256Bytes(new(big.Int).Set(n)), nil

	case BoolKind:
		b, ok := v.(bool)
		if !ok {
			return nil, t.mismatch(v)
		}
		word := make([]byte, WordSize)
		if b {
			word[WordSize-1] = 1
		}
		return word, nil

	case AddressKind:
		addr, ok := toAddress(v)
		if !ok {
			return nil, t.mismatch(v)
		}
		return common.LeftPadBytes(addr.Bytes(), WordSize), nil

	case FixedBytesKind:
		b, ok := toBytes(v)
		if !ok {
			return nil, t.mismatch(v)
		}
		if len(b) > t.Size {
			return nil, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d bytes", len(b))}
		}
		word := make([]byte, WordSize)
		copy(word, b)
		return word, nil

	case BytesKind:
		b, ok := toBytes(v)
		if !ok {
			return nil, t.mismatch(v)
		}
		return append(encodeLength(len(b)), padRight(b)...), nil

	case StringKind:
		s, ok := v.(string)
		if !ok {
			return nil, t.mismatch(v)
		}
		return append(encodeLength(len(s)), padRight([]byte(s))...), nil

	case SliceKind:
		elems, ok := toSequence(v)
		if !ok {
			return nil, t.mismatch(v)
		}
		enc, idx, err := encodeSequence(len(elems), t.elemAt, elems)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", idx, err)
		}
		return append(encodeLength(len(elems)), enc...), nil

	case ArrayKind:
		elems, ok := toSequence(v)
		if !ok {
			return nil, t.mismatch(v)
		}
		if len(elems) != t.Size {
			return nil, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d elements", len(elems))}
		}
		enc, idx, err := encodeSequence(len(elems), t.elemAt, elems)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", idx, err)
		}
		return enc, nil

	case TupleKind:
		fields, ok := toTuple(v)
		if !ok {
			return nil, t.mismatch(v)
		}
		if len(fields) != len(t.Fields) {
			return nil, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d fields", len(fields))}
		}
		enc, idx, err := encodeSequence(len(fields), t.fieldAt, fields)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", idx, err)
		}
		return enc, nil
	}
	return nil, t.mismatch(v)
}

// Decode decodes a single value from buf. For static types offset is the
// position of the value itself; for dynamic types it is the start of the tail
// an offset word points to.
func (t Type) Decode(buf []byte, offset int) (any, error) {
	if offset < 0 {
		return nil, &OutOfBoundsError{Offset: uint64(offset), Length: WordSize, Size: len(buf)}
	}
	return t.decode(buf, uint64(offset), newBudget(buf))
}

func (t Type) decode(buf []byte, offset uint64, budget *int) (any, error) {
	switch t.Kind {
	case IntKind, UintKind:
		word, err := readWord(buf, offset)
		if err != nil {
			return nil, err
		}
		n := new(big.Int).SetBytes(word)
		if t.Kind == IntKind && n.Bit(255) == 1 {
			n.Sub(n, tt256)
		}
		if !t.fits(n) {
			return nil, fmt.Errorf("%w: %s out of range for %s", ErrMalformedWord, n, t)
		}
		return n, nil

	case BoolKind:
		word, err := readWord(buf, offset)
		if err != nil {
			return nil, err
		}
		return readBool(word)

	case AddressKind:
		word, err := readWord(buf, offset)
		if err != nil {
			return nil, err
		}
		return common.BytesToAddress(word[WordSize-AddressSize:]), nil

	case FixedBytesKind:
		word, err := readWord(buf, offset)
		if err != nil {
			return nil, err
		}
		return common.CopyBytes(word[:t.Size]), nil

	case BytesKind, StringKind:
		n, err := readSize(buf, offset)
		if err != nil {
			return nil, err
		}
		start := offset + WordSize
		if err := checkBounds(buf, start, n); err != nil {
			return nil, err
		}
		if t.Kind == StringKind {
			return string(buf[start : start+n]), nil
		}
		return common.CopyBytes(buf[start : start+n]), nil

	case SliceKind:
		n, err := readSize(buf, offset)
		if err != nil {
			return nil, err
		}
		start := offset + WordSize
		if err := checkBounds(buf, start, n*uint64(t.Elem.HeadSize())); err != nil {
			return nil, err
		}
		if err := spend(budget, n, len(buf)); err != nil {
			return nil, err
		}
		return decodeSequence(int(n), t.elemAt, buf, start, budget)

	case ArrayKind:
		size := uint64(t.Size)
		if offset > uint64(len(buf)) || size > (uint64(len(buf))-offset)/WordSize {
			length := ^uint64(0)
			if size <= length/WordSize {
				length = size * WordSize
			}
			return nil, &OutOfBoundsError{Offset: offset, Length: length, Size: len(buf)}
		}
		if err := checkBounds(buf, offset, size*uint64(t.Elem.HeadSize())); err != nil {
			return nil, err
		}
		if err := spend(budget, size, len(buf)); err != nil {
			return nil, err
		}
		return decodeSequence(t.Size, t.elemAt, buf, offset, budget)

	case TupleKind:
		if err := spend(budget, uint64(len(t.Fields)), len(buf)); err != nil {
			return nil, err
		}
		return decodeSequence(len(t.Fields), t.fieldAt, buf, offset, budget)
	}
	return nil, fmt.Errorf("solabi: cannot decode %s", t.Kind)
}

func (t Type) elemAt(int) Type { return *t.Elem }

func (t Type) fieldAt(i int) Type { return t.Fields[i] }

// fits reports whether n is representable in the integer type.
func (t Type) fits(n *big.Int) bool {
	if t.Kind == UintKind {
		return n.Sign() >= 0 && n.BitLen() <= t.Size
	}
	if n.Sign() >= 0 {
		return n.BitLen() < t.Size
	}
	// -2^(k-1) <= n  <=>  bitlen(-n-1) < k
	abs := new(big.Int).Neg(n)
	return abs.Sub(abs, big.NewInt(1)).BitLen() < t.Size
}

func (t Type) mismatch(v any) error {
	return &TypeMismatchError{Expected: t.String(), Got: describe(v)}
}

func readBool(word []byte) (bool, error) {
	for _, b := range word[:WordSize-1] {
		if b != 0 {
			return false, fmt.Errorf("%w: improperly encoded bool", ErrMalformedWord)
		}
	}
	switch word[WordSize-1] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: improperly encoded bool", ErrMalformedWord)
	}
}
