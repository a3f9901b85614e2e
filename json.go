package solabi

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"
)

// argumentJSON is a parameter in the JSON ABI description.
type argumentJSON struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	InternalType string         `json:"internalType,omitempty"`
	Components   []argumentJSON `json:"components,omitempty"`
	Indexed      bool           `json:"indexed,omitempty"`
}

// entryJSON is an entry in the JSON ABI description.
type entryJSON struct {
	Type            string         `json:"type"`
	Name            string         `json:"name,omitempty"`
	Inputs          []argumentJSON `json:"inputs"`
	Outputs         []argumentJSON `json:"outputs,omitempty"`
	Constant        bool           `json:"constant,omitempty"`
	Anonymous       bool           `json:"anonymous,omitempty"`
	StateMutability string         `json:"stateMutability,omitempty"`
}

// ParseABI parses a JSON ABI description.
func ParseABI(abiJSON string, opts ...Option) (*ABI, error) {
	return ReadABI(strings.NewReader(abiJSON), opts...)
}

// MustParseABI is like ParseABI but panics on error.
// Use only with compile-time constant descriptions.
func MustParseABI(abiJSON string, opts ...Option) *ABI {
	parsed, err := ParseABI(abiJSON, opts...)
	if err != nil {
		panic(err)
	}
	return parsed
}

// ReadABI decodes a JSON ABI description from r. Entries of type fallback,
// receive and error carry no codec and are skipped.
func ReadABI(r io.Reader, opts ...Option) (*ABI, error) {
	var raw []entryJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDescription, err)
	}

	cfg := newConfig(opts)
	entries := make([]Entry, 0, len(raw))
	for i, e := range raw {
		inputs, err := toParameters(e.Inputs)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
		outputs, err := toParameters(e.Outputs)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}

		switch EntryType(e.Type) {
		case "", FunctionEntry:
			constant := e.Constant || e.StateMutability == "view" || e.StateMutability == "pure"
			entries = append(entries, &Function{
				entry:    newEntry(e.Name, inputs, outputs, cfg),
				constant: constant,
			})
		case ConstructorEntry:
			entries = append(entries, &Function{
				entry:       newEntry(e.Name, inputs, nil, cfg),
				constructor: true,
			})
		case EventEntry:
			entries = append(entries, &Event{
				entry:     newEntry(e.Name, inputs, nil, cfg),
				anonymous: e.Anonymous,
			})
		case "fallback", "receive", "error":
			log.Debug("Skipping ABI entry without codec", "type", e.Type, "name", e.Name)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownEntryType, e.Type)
		}
	}
	return &ABI{entries: entries}, nil
}

func toParameters(args []argumentJSON) (Parameters, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make(Parameters, len(args))
	for i, arg := range args {
		components, err := toParameters(arg.Components)
		if err != nil {
			return nil, err
		}
		t, err := ParseType(arg.Type, components...)
		if err != nil {
			return nil, err
		}
		params[i] = Parameter{Name: arg.Name, Type: t, Indexed: arg.Indexed}
	}
	return params, nil
}

// MarshalJSON encodes the ABI back into its JSON description.
func (a *ABI) MarshalJSON() ([]byte, error) {
	raw := make([]entryJSON, len(a.entries))
	for i, e := range a.entries {
		out := entryJSON{
			Type:    string(e.Type()),
			Name:    e.Name(),
			Inputs:  fromParameters(e.Inputs()),
			Outputs: fromParameters(e.Outputs()),
		}
		switch v := e.(type) {
		case *Function:
			out.Constant = v.Constant()
		case *Event:
			out.Anonymous = v.Anonymous()
		}
		if out.Inputs == nil {
			out.Inputs = []argumentJSON{}
		}
		raw[i] = out
	}
	return json.Marshal(raw)
}

func fromParameters(params Parameters) []argumentJSON {
	if len(params) == 0 {
		return nil
	}
	args := make([]argumentJSON, len(params))
	for i, p := range params {
		typ, components := typeJSON(p.Type)
		args[i] = argumentJSON{Name: p.Name, Type: typ, Components: components, Indexed: p.Indexed}
	}
	return args
}

// typeJSON splits a type into the JSON "type" string and its tuple components.
func typeJSON(t Type) (string, []argumentJSON) {
	switch t.Kind {
	case ArrayKind:
		s, components := typeJSON(*t.Elem)
		return s + "[" + strconv.Itoa(t.Size) + "]", components
	case SliceKind:
		s, components := typeJSON(*t.Elem)
		return s + "[]", components
	case TupleKind:
		components := make([]argumentJSON, len(t.Fields))
		for i, f := range t.Fields {
			s, nested := typeJSON(f)
			components[i] = argumentJSON{Type: s, Components: nested}
			if i < len(t.FieldNames) {
				components[i].Name = t.FieldNames[i]
			}
		}
		return "tuple", components
	default:
		return t.String(), nil
	}
}
