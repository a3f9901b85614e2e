package solabi

import (
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// EntryType is the discriminant of an ABI description entry.
type EntryType string

const (
	// ConstructorEntry describes the contract constructor. It is modelled as a Function.
	ConstructorEntry EntryType = "constructor"

	// FunctionEntry describes a callable function.
	FunctionEntry EntryType = "function"

	// EventEntry describes a log event.
	EventEntry EntryType = "event"
)

func (t EntryType) String() string {
	return string(t)
}

// Entry is a function or event declaration.
// This is a sealed interface - only *Function and *Event implement it.
type Entry interface {
	// isEntry is unexported to seal the interface.
	isEntry()

	// Type returns the entry discriminant.
	Type() EntryType

	// Name returns the declared name.
	Name() string

	// Inputs returns a copy of the input parameters.
	Inputs() Parameters

	// Outputs returns a copy of the output parameters (always empty for events).
	Outputs() Parameters

	// Signature returns the canonical signature, e.g. "transfer(address,uint256)".
	Signature() string

	// Fingerprint returns the hash of the canonical signature.
	Fingerprint() common.Hash

	// EncodeSignature returns the identifier written into payloads: the
	// 4-byte selector for functions, the full fingerprint for events.
	EncodeSignature() []byte

	// String renders the declaration in Solidity syntax.
	String() string
}

// entry holds the fields shared by functions and events. The signature and
// its fingerprint are derived once at construction.
type entry struct {
	name        string
	inputs      Parameters
	outputs     Parameters
	signature   string
	fingerprint common.Hash
	hasher      Hasher
}

func newEntry(name string, inputs, outputs Parameters, cfg *config) entry {
	e := entry{
		name:    name,
		inputs:  slices.Clone(inputs),
		outputs: slices.Clone(outputs),
		hasher:  cfg.hasher,
	}
	e.signature = formatSignature(name, e.inputs)
	e.fingerprint = e.hasher([]byte(e.signature))
	return e
}

func formatSignature(name string, inputs Parameters) string {
	return name + "(" + strings.Join(inputs.Types(), ",") + ")"
}

func (e *entry) Name() string { return e.name }

func (e *entry) Inputs() Parameters { return slices.Clone(e.inputs) }

func (e *entry) Outputs() Parameters { return slices.Clone(e.outputs) }

func (e *entry) Signature() string { return e.signature }

func (e *entry) Fingerprint() common.Hash { return e.fingerprint }

func (e *entry) EncodeSignature() []byte { return e.fingerprint.Bytes() }
