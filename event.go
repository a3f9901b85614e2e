package solabi

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Event is an event declaration together with its log codec.
// Indexed inputs travel in topics, the rest in the log data.
type Event struct {
	entry
	anonymous bool
}

func (e *Event) isEntry() {}

// NewEvent creates an event entry.
func NewEvent(name string, inputs Parameters, anonymous bool, opts ...Option) *Event {
	return &Event{
		entry:     newEntry(name, inputs, nil, newConfig(opts)),
		anonymous: anonymous,
	}
}

// Type returns EventEntry.
func (e *Event) Type() EntryType {
	return EventEntry
}

// Anonymous returns true if the event omits the signature topic.
func (e *Event) Anonymous() bool {
	return e.anonymous
}

// Topic returns the signature topic emitted first by non-anonymous events.
func (e *Event) Topic() common.Hash {
	return e.fingerprint
}

// Decode reconstructs the event inputs in declaration order from a log's data
// and topics. Indexed strings, bytes, arrays and tuples are only present as a
// hash, so they decode to the raw common.Hash topic.
func (e *Event) Decode(data []byte, topics []common.Hash) ([]any, error) {
	argTopics := topics
	if !e.anonymous {
		if len(topics) == 0 {
			return nil, fmt.Errorf("%w: missing signature topic for %s", ErrDecodeOutOfBounds, e.signature)
		}
		argTopics = topics[1:]
	}

	indexedParams := e.inputs.Indexed()
	if len(argTopics) != len(indexedParams) {
		return nil, fmt.Errorf("%w: %d topics for %d indexed parameters of %s",
			ErrDecodeOutOfBounds, len(argTopics), len(indexedParams), e.signature)
	}

	indexed, err := topicParameters(indexedParams).Decode(JoinWords(argTopics))
	if err != nil {
		return nil, fmt.Errorf("%s topics: %w", e.signature, err)
	}
	for i, p := range indexedParams {
		if isHashedTopic(p.Type) {
			indexed[i] = common.BytesToHash(indexed[i].([]byte))
		}
	}

	notIndexed, err := e.inputs.NonIndexed().Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s data: %w", e.signature, err)
	}

	result := make([]any, 0, len(e.inputs))
	for _, p := range e.inputs {
		if p.Indexed {
			result = append(result, indexed[0])
			indexed = indexed[1:]
		} else {
			result = append(result, notIndexed[0])
			notIndexed = notIndexed[1:]
		}
	}
	return result, nil
}

// Encode builds the topics and data of a log carrying values, given in
// declaration order. Every input needs a value.
func (e *Event) Encode(values ...any) ([]common.Hash, []byte, error) {
	if len(values) > len(e.inputs) {
		return nil, nil, fmt.Errorf("%s: %w: %d > %d", e.signature, ErrTooManyArguments, len(values), len(e.inputs))
	}
	if len(values) < len(e.inputs) {
		return nil, nil, &ArgumentError{Entry: e.signature, Index: len(values), Err: ErrMissingArgument}
	}

	var (
		indexed, notIndexed []any
		indexedPos, dataPos []int
	)
	for i, p := range e.inputs {
		if p.Indexed {
			indexed = append(indexed, values[i])
			indexedPos = append(indexedPos, i)
		} else {
			notIndexed = append(notIndexed, values[i])
			dataPos = append(dataPos, i)
		}
	}

	topics, err := e.EncodeTopics(indexed...)
	if err != nil {
		return nil, nil, e.remapArgument(err, indexedPos)
	}
	data, err := e.inputs.NonIndexed().Encode(notIndexed...)
	if err != nil {
		return nil, nil, e.remapArgument(err, dataPos)
	}
	return topics, data, nil
}

// remapArgument rewrites the index of an ArgumentError raised for a
// subsequence of the inputs to its position in the declaration.
func (e *Event) remapArgument(err error, positions []int) error {
	var argErr *ArgumentError
	if !errors.As(err, &argErr) || argErr.Index >= len(positions) {
		return fmt.Errorf("%s: %w", e.signature, err)
	}
	return &ArgumentError{Entry: e.signature, Index: positions[argErr.Index], Err: argErr.Err}
}

// EncodeTopics builds the topic list for values of the indexed inputs, in
// order, starting with the signature topic unless the event is anonymous.
// Supplying fewer values yields a prefix, as used by log filters.
func (e *Event) EncodeTopics(values ...any) ([]common.Hash, error) {
	indexedParams := e.inputs.Indexed()
	if len(values) > len(indexedParams) {
		return nil, fmt.Errorf("%s: %w: %d > %d indexed", e.signature, ErrTooManyArguments, len(values), len(indexedParams))
	}

	topics := make([]common.Hash, 0, len(values)+1)
	if !e.anonymous {
		topics = append(topics, e.fingerprint)
	}
	for i, v := range values {
		t := indexedParams[i].Type
		if !isHashedTopic(t) {
			word, err := t.Encode(v)
			if err != nil {
				return nil, &ArgumentError{Entry: e.signature, Index: i, Err: err}
			}
			topics = append(topics, common.BytesToHash(word))
			continue
		}
		preimage, err := topicPreimage(t, v, false)
		if err != nil {
			return nil, &ArgumentError{Entry: e.signature, Index: i, Err: err}
		}
		topics = append(topics, e.hasher(preimage))
	}
	return topics, nil
}

// String renders the event, e.g.
// "event Transfer(address indexed from, address indexed to, uint256 value);".
func (e *Event) String() string {
	if e.anonymous {
		return fmt.Sprintf("event %s(%s) anonymous;", e.name, e.inputs)
	}
	return fmt.Sprintf("event %s(%s);", e.name, e.inputs)
}

// isHashedTopic reports whether an indexed value of type t is stored as the
// hash of its encoding rather than as a word.
func isHashedTopic(t Type) bool {
	switch t.Kind {
	case BytesKind, StringKind, ArrayKind, SliceKind, TupleKind:
		return true
	default:
		return false
	}
}

// topicParameters maps hashed indexed inputs to bytes32 so that every
// indexed input occupies exactly one topic word.
func topicParameters(params Parameters) Parameters {
	out := make(Parameters, len(params))
	for i, p := range params {
		out[i] = p
		if isHashedTopic(p.Type) {
			out[i].Type = FixedBytesType(WordSize)
		}
	}
	return out
}

// topicPreimage produces the in-place encoding hashed into a topic: bytes and
// strings are used raw at the top level and word-padded when nested; arrays
// and tuples concatenate their elements without offsets or lengths.
func topicPreimage(t Type, v any, nested bool) ([]byte, error) {
	switch t.Kind {
	case BytesKind, StringKind:
		var (
			raw []byte
			ok  bool
		)
		if t.Kind == StringKind {
			var s string
			s, ok = v.(string)
			raw = []byte(s)
		} else {
			raw, ok = toBytes(v)
		}
		if !ok {
			return nil, t.mismatch(v)
		}
		if nested {
			return padRight(raw), nil
		}
		return raw, nil

	case ArrayKind, SliceKind:
		elems, ok := toSequence(v)
		if !ok {
			return nil, t.mismatch(v)
		}
		if t.Kind == ArrayKind && len(elems) != t.Size {
			return nil, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d elements", len(elems))}
		}
		var out []byte
		for i, elem := range elems {
			enc, err := topicPreimage(*t.Elem, elem, true)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, enc...)
		}
		return out, nil

	case TupleKind:
		fields, ok := toTuple(v)
		if !ok {
			return nil, t.mismatch(v)
		}
		if len(fields) != len(t.Fields) {
			return nil, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d fields", len(fields))}
		}
		var out []byte
		for i, field := range fields {
			enc, err := topicPreimage(t.Fields[i], field, true)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", i, err)
			}
			out = append(out, enc...)
		}
		return out, nil

	default:
		return t.Encode(v)
	}
}
