package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/branched-services/go-solabi"
)

// parseArgs converts command line arguments to values for params.
func parseArgs(params solabi.Parameters, args []string) ([]any, error) {
	if len(args) != len(params) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(params), len(args))
	}
	values := make([]any, len(args))
	for i, arg := range args {
		v, err := parseValue(params[i].Type, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, params[i].Type, err)
		}
		values[i] = v
	}
	return values, nil
}

// parseValue reads a value of type t. Arrays and tuples are written as JSON
// arrays, e.g. ["0x01", 2] or [[1, 2], [3]].
func parseValue(t solabi.Type, s string) (any, error) {
	switch t.Kind {
	case solabi.ArrayKind, solabi.SliceKind, solabi.TupleKind:
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		return fromJSON(t, raw)
	default:
		return parseScalar(t, s)
	}
}

func fromJSON(t solabi.Type, raw any) (any, error) {
	switch t.Kind {
	case solabi.ArrayKind, solabi.SliceKind, solabi.TupleKind:
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("expected a JSON array for %s", t)
		}
		out := make([]any, len(list))
		for i, item := range list {
			elem := t
			switch t.Kind {
			case solabi.TupleKind:
				if i >= len(t.Fields) {
					return nil, fmt.Errorf("too many fields for %s", t)
				}
				elem = t.Fields[i]
			default:
				elem = *t.Elem
			}
			v, err := fromJSON(elem, item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	switch v := raw.(type) {
	case string:
		return parseScalar(t, v)
	case json.Number:
		return parseScalar(t, v.String())
	case bool:
		return parseScalar(t, strconv.FormatBool(v))
	default:
		return nil, fmt.Errorf("unexpected JSON value %v for %s", raw, t)
	}
}

func parseScalar(t solabi.Type, s string) (any, error) {
	switch t.Kind {
	case solabi.IntKind, solabi.UintKind:
		neg := strings.HasPrefix(s, "-")
		n, ok := math.ParseBig256(strings.TrimPrefix(s, "-"))
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		if neg {
			n.Neg(n)
		}
		return n, nil
	case solabi.BoolKind:
		return strconv.ParseBool(s)
	case solabi.AddressKind:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil
	case solabi.FixedBytesKind, solabi.BytesKind:
		return hexutil.Decode(s)
	case solabi.StringKind:
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", t)
	}
}

// formatValue renders a decoded value. Sequences and tuples are written as
// bracketed lists.
func formatValue(v any) string {
	switch v := v.(type) {
	case *big.Int:
		return v.String()
	case common.Address:
		return v.Hex()
	case common.Hash:
		return v.Hex()
	case []byte:
		return hexutil.Encode(v)
	case string:
		return strconv.Quote(v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}
