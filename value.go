package solabi

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Decoded values use one canonical Go type per ABI kind:
//   - int<N>, uint<N>: *big.Int
//   - bool: bool
//   - address: common.Address
//   - bytes<N>, bytes: []byte
//   - string: string
//   - T[k], T[], tuples: []any
//
// Encoding accepts those plus the common conversions handled below.

// toBigInt handles the Go integer types accepted for int<N>/uint<N>.
func toBigInt(value any) (*big.Int, bool) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return v, true
	case big.Int:
		return &v, true
	case *uint256.Int:
		if v == nil {
			return nil, false
		}
		return v.ToBig(), true
	case int:
		return big.NewInt(int64(v)), true
	case int8:
		return big.NewInt(int64(v)), true
	case int16:
		return big.NewInt(int64(v)), true
	case int32:
		return big.NewInt(int64(v)), true
	case int64:
		return big.NewInt(v), true
	case uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	default:
		return nil, false
	}
}

// toAddress accepts common.Address, a raw 20-byte array or a hex string.
func toAddress(value any) (common.Address, bool) {
	switch v := value.(type) {
	case common.Address:
		return v, true
	case *common.Address:
		if v == nil {
			return common.Address{}, false
		}
		return *v, true
	case [AddressSize]byte:
		return common.Address(v), true
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, false
		}
		return common.HexToAddress(v), true
	default:
		return common.Address{}, false
	}
}

// toBytes accepts byte slices and byte arrays of any named type
// (common.Hash, hexutil.Bytes, [N]byte).
func toBytes(value any) ([]byte, bool) {
	if b, ok := value.([]byte); ok {
		return b, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Bytes(), true
		}
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			out := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(out), rv)
			return out, true
		}
	}
	return nil, false
}

// toSequence accepts []any or any Go slice/array for T[] and T[k].
func toSequence(value any) ([]any, bool) {
	if s, ok := value.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// toTuple accepts []any or a struct whose exported fields follow the tuple
// field order.
func toTuple(value any) ([]any, bool) {
	if s, ok := value.([]any); ok {
		return s, true
	}
	rv := reflect.Indirect(reflect.ValueOf(value))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, false
	}
	out := make([]any, 0, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		if !rv.Type().Field(i).IsExported() {
			continue
		}
		out = append(out, rv.Field(i).Interface())
	}
	return out, true
}

func describe(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
