package solabi

import (
	"fmt"
	"strings"
)

// Parameter is a named, typed slot in a function's inputs or outputs or an
// event's inputs. Indexed is only meaningful for event inputs.
type Parameter struct {
	Name    string
	Type    Type
	Indexed bool
}

// String renders the parameter as it would appear in Solidity source.
func (p Parameter) String() string {
	s := p.Type.String()
	if p.Indexed {
		s += " indexed"
	}
	if p.Name != "" {
		s += " " + p.Name
	}
	return s
}

// Parameters is an ordered parameter list, encoded as one head/tail block.
type Parameters []Parameter

// Types returns the canonical type names, e.g. for signatures.
func (ps Parameters) Types() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Type.String()
	}
	return names
}

// String joins the parameters the way Solidity declares them.
func (ps Parameters) String() string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Indexed returns the indexed subsequence, preserving order.
func (ps Parameters) Indexed() Parameters {
	return ps.filter(true)
}

// NonIndexed returns the non-indexed subsequence, preserving order.
func (ps Parameters) NonIndexed() Parameters {
	return ps.filter(false)
}

func (ps Parameters) filter(indexed bool) Parameters {
	out := make(Parameters, 0, len(ps))
	for _, p := range ps {
		if p.Indexed == indexed {
			out = append(out, p)
		}
	}
	return out
}

// StaticSize returns the size of the head section for the parameter list.
func (ps Parameters) StaticSize() int {
	size := 0
	for _, p := range ps {
		size += p.Type.HeadSize()
	}
	return size
}

// Encode packs values into the heads-then-tails layout. Supplying fewer values
// than parameters encodes only that prefix; supplying more is an error.
func (ps Parameters) Encode(values ...any) ([]byte, error) {
	if len(values) > len(ps) {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyArguments, len(values), len(ps))
	}
	out, failed, err := encodeSequence(len(values), ps.typeAt, values)
	if err != nil {
		return nil, &ArgumentError{Index: failed, Err: err}
	}
	return out, nil
}

// Decode unpacks one value per parameter from data.
func (ps Parameters) Decode(data []byte) ([]any, error) {
	values, err := decodeSequence(len(ps), ps.typeAt, data, 0, newBudget(data))
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (ps Parameters) typeAt(i int) Type { return ps[i].Type }

// encodeSequence lays out n values as heads followed by tails. Offsets stored
// in the heads are relative to the start of the returned block. On failure the
// index of the offending value is returned alongside the error.
func encodeSequence(n int, typeAt func(int) Type, values []any) ([]byte, int, error) {
	staticSize := 0
	dynamicCount := 0
	for i := 0; i < n; i++ {
		t := typeAt(i)
		if t.IsDynamic() {
			dynamicCount++
		}
		staticSize += t.HeadSize()
	}

	segments := make([][]byte, n+dynamicCount)
	dynamicPointer := staticSize
	tail := n
	for i := 0; i < n; i++ {
		t := typeAt(i)
		enc, err := t.Encode(values[i])
		if err != nil {
			return nil, i, err
		}
		if !t.IsDynamic() {
			segments[i] = enc
			continue
		}
		segments[i] = encodeLength(dynamicPointer)
		segments[tail] = enc
		tail++
		dynamicPointer += len(enc)
	}

	out := make([]byte, 0, dynamicPointer)
	for _, s := range segments {
		out = append(out, s...)
	}
	return out, 0, nil
}

// decodeSequence reads n values whose heads start at base. Offset words are
// resolved relative to base; tails are never scanned sequentially.
func decodeSequence(n int, typeAt func(int) Type, buf []byte, base uint64, budget *int) ([]any, error) {
	values := make([]any, n)
	head := base
	for i := 0; i < n; i++ {
		t := typeAt(i)
		var (
			v   any
			err error
		)
		if t.IsDynamic() {
			var ptr uint64
			ptr, err = readSize(buf, head)
			if err == nil {
				v, err = t.decode(buf, base+ptr, budget)
			}
		} else {
			v, err = t.decode(buf, head, budget)
		}
		if err != nil {
			return nil, err
		}
		values[i] = v
		head += uint64(t.HeadSize())
	}
	return values, nil
}

// newBudget caps the array and tuple elements a single decode may produce at
// one per payload byte, however often offsets point at the same tail.
func newBudget(buf []byte) *int {
	n := len(buf)
	return &n
}

func spend(budget *int, n uint64, size int) error {
	if n > uint64(*budget) {
		return fmt.Errorf("%w: more than %d elements in a %d-byte payload", ErrDecodeOutOfBounds, size, size)
	}
	*budget -= int(n)
	return nil
}
