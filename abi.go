package solabi

import (
	"bytes"
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// ABI is an ordered, read-only collection of entries in declaration order.
// Overloaded names are allowed; lookups select by predicate.
type ABI struct {
	entries []Entry
}

// NewABI creates an ABI from entries, keeping their order.
func NewABI(entries ...Entry) *ABI {
	return &ABI{entries: slices.Clone(entries)}
}

// Entries returns a copy of all entries.
func (a *ABI) Entries() []Entry {
	return slices.Clone(a.entries)
}

// Len returns the number of entries.
func (a *ABI) Len() int {
	return len(a.entries)
}

// FindFunction returns the first function (or constructor) matching pred.
func (a *ABI) FindFunction(pred func(*Function) bool) (*Function, bool) {
	for _, e := range a.entries {
		if f, ok := e.(*Function); ok && pred(f) {
			return f, true
		}
	}
	return nil, false
}

// FindEvent returns the first event matching pred.
func (a *ABI) FindEvent(pred func(*Event) bool) (*Event, bool) {
	for _, e := range a.entries {
		if ev, ok := e.(*Event); ok && pred(ev) {
			return ev, true
		}
	}
	return nil, false
}

// Function returns the first function declared with name. For overloads use
// FindFunction or FunctionBySelector.
func (a *ABI) Function(name string) (*Function, error) {
	f, ok := a.FindFunction(func(f *Function) bool {
		return !f.IsConstructor() && f.Name() == name
	})
	if !ok {
		return nil, &EntryNotFoundError{Kind: FunctionEntry, Key: name}
	}
	return f, nil
}

// MustFunction is like Function but panics on error.
func (a *ABI) MustFunction(name string) *Function {
	f, err := a.Function(name)
	if err != nil {
		panic(err)
	}
	return f
}

// FunctionBySelector returns the function whose selector prefixes data,
// e.g. to identify the function a call payload invokes.
func (a *ABI) FunctionBySelector(data []byte) (*Function, error) {
	if len(data) < SelectorSize {
		return nil, &OutOfBoundsError{Length: SelectorSize, Size: len(data)}
	}
	f, ok := a.FindFunction(func(f *Function) bool {
		return !f.IsConstructor() && bytes.Equal(f.EncodeSignature(), data[:SelectorSize])
	})
	if !ok {
		return nil, &EntryNotFoundError{Kind: FunctionEntry, Key: "selector " + common.Bytes2Hex(data[:SelectorSize])}
	}
	return f, nil
}

// Constructor returns the constructor entry, if declared.
func (a *ABI) Constructor() (*Function, bool) {
	return a.FindFunction(func(f *Function) bool {
		return f.IsConstructor()
	})
}

// Event returns the first event declared with name.
func (a *ABI) Event(name string) (*Event, error) {
	ev, ok := a.FindEvent(func(e *Event) bool {
		return e.Name() == name
	})
	if !ok {
		return nil, &EntryNotFoundError{Kind: EventEntry, Key: name}
	}
	return ev, nil
}

// MustEvent is like Event but panics on error.
func (a *ABI) MustEvent(name string) *Event {
	ev, err := a.Event(name)
	if err != nil {
		panic(err)
	}
	return ev
}

// EventByTopic returns the non-anonymous event whose signature topic is topic.
func (a *ABI) EventByTopic(topic common.Hash) (*Event, error) {
	ev, ok := a.FindEvent(func(e *Event) bool {
		return !e.Anonymous() && e.Topic() == topic
	})
	if !ok {
		return nil, &EntryNotFoundError{Kind: EventEntry, Key: "topic " + topic.Hex()}
	}
	return ev, nil
}

// Functions returns all functions, excluding the constructor, in order.
func (a *ABI) Functions() []*Function {
	var out []*Function
	for _, e := range a.entries {
		if f, ok := e.(*Function); ok && !f.IsConstructor() {
			out = append(out, f)
		}
	}
	return out
}

// Events returns all events in order.
func (a *ABI) Events() []*Event {
	var out []*Event
	for _, e := range a.entries {
		if ev, ok := e.(*Event); ok {
			out = append(out, ev)
		}
	}
	return out
}

// HasFunction returns true if a function with the given name is declared.
func (a *ABI) HasFunction(name string) bool {
	_, err := a.Function(name)
	return err == nil
}

// FunctionNames returns the distinct function names in declaration order.
func (a *ABI) FunctionNames() []string {
	var names []string
	for _, f := range a.Functions() {
		if !slices.Contains(names, f.Name()) {
			names = append(names, f.Name())
		}
	}
	return names
}

// String returns the JSON description of the ABI.
func (a *ABI) String() string {
	out, err := a.MarshalJSON()
	if err != nil {
		return "solabi: " + err.Error()
	}
	return string(out)
}
