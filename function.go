package solabi

import (
	"errors"
	"fmt"
	"strings"
)

// Function is a function or constructor declaration together with its codec.
// Function is immutable and safe for concurrent use.
type Function struct {
	entry
	constant    bool
	constructor bool
}

func (f *Function) isEntry() {}

// NewFunction creates a function entry.
func NewFunction(name string, inputs, outputs Parameters, constant bool, opts ...Option) *Function {
	return &Function{
		entry:    newEntry(name, inputs, outputs, newConfig(opts)),
		constant: constant,
	}
}

// NewConstructor creates a constructor entry. Constructors have no name and
// their arguments are appended to deployment code without a selector.
func NewConstructor(inputs Parameters, opts ...Option) *Function {
	return &Function{
		entry:       newEntry("", inputs, nil, newConfig(opts)),
		constructor: true,
	}
}

// Type returns ConstructorEntry for constructors and FunctionEntry otherwise.
func (f *Function) Type() EntryType {
	if f.constructor {
		return ConstructorEntry
	}
	return FunctionEntry
}

// Constant returns true if the function does not modify state.
func (f *Function) Constant() bool {
	return f.constant
}

// IsConstructor returns true for the constructor entry.
func (f *Function) IsConstructor() bool {
	return f.constructor
}

// Selector returns the 4-byte function selector.
func (f *Function) Selector() [SelectorSize]byte {
	var sel [SelectorSize]byte
	copy(sel[:], f.fingerprint[:SelectorSize])
	return sel
}

// EncodeSignature returns the selector as a byte slice.
func (f *Function) EncodeSignature() []byte {
	sel := f.Selector()
	return sel[:]
}

// Encode builds call data: the selector followed by the encoded arguments.
func (f *Function) Encode(args ...any) ([]byte, error) {
	encoded, err := f.EncodeArguments(args...)
	if err != nil {
		return nil, err
	}
	return append(f.EncodeSignature(), encoded...), nil
}

// EncodeArguments encodes the arguments without a selector, as appended to
// constructor deployment code.
func (f *Function) EncodeArguments(args ...any) ([]byte, error) {
	return f.encodeParams(f.inputs, args)
}

// EncodeResult encodes return data for the function's outputs.
func (f *Function) EncodeResult(values ...any) ([]byte, error) {
	return f.encodeParams(f.outputs, values)
}

func (f *Function) encodeParams(params Parameters, values []any) ([]byte, error) {
	encoded, err := params.Encode(values...)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			argErr.Entry = f.signature
			return nil, argErr
		}
		return nil, fmt.Errorf("%s: %w", f.signature, err)
	}
	return encoded, nil
}

// DecodeArguments strips the selector from call data and decodes the inputs.
func (f *Function) DecodeArguments(data []byte) ([]any, error) {
	if len(data) < SelectorSize {
		return nil, &OutOfBoundsError{Length: SelectorSize, Size: len(data)}
	}
	return f.inputs.Decode(data[SelectorSize:])
}

// DecodeResult decodes return data. Return data carries no selector.
func (f *Function) DecodeResult(data []byte) ([]any, error) {
	return f.outputs.Decode(data)
}

// String renders the function, e.g.
// "function balanceOf(address owner) constant returns(uint256);".
func (f *Function) String() string {
	if f.constructor {
		return fmt.Sprintf("constructor(%s);", f.inputs)
	}
	var tail strings.Builder
	if f.constant {
		tail.WriteString(" constant")
	}
	if len(f.outputs) > 0 {
		fmt.Fprintf(&tail, " returns(%s)", strings.Join(f.outputs.Types(), ", "))
	}
	return fmt.Sprintf("function %s(%s)%s;", f.name, f.inputs, tail.String())
}
