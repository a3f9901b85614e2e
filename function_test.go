package solabi

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func newTransfer() *Function {
	return NewFunction("transfer",
		Parameters{{Name: "to", Type: AddressType()}, {Name: "amount", Type: UintType(256)}},
		Parameters{{Type: BoolType()}},
		false,
	)
}

func TestFunctionSignature(t *testing.T) {
	f := newTransfer()

	t.Run("canonical signature", func(t *testing.T) {
		if f.Signature() != "transfer(address,uint256)" {
			t.Errorf("Expected transfer(address,uint256), got %s", f.Signature())
		}
	})

	t.Run("fingerprint", func(t *testing.T) {
		want := crypto.Keccak256Hash([]byte("transfer(address,uint256)"))
		if f.Fingerprint() != want {
			t.Errorf("Expected %s, got %s", want.Hex(), f.Fingerprint().Hex())
		}
	})

	t.Run("selector", func(t *testing.T) {
		sel := f.Selector()
		if hex.EncodeToString(sel[:]) != "a9059cbb" {
			t.Errorf("Expected a9059cbb, got %x", sel)
		}
		want := crypto.Keccak256([]byte("transfer(address,uint256)"))[:4]
		if !bytes.Equal(f.EncodeSignature(), want) {
			t.Errorf("Expected EncodeSignature %x, got %x", want, f.EncodeSignature())
		}
	})

	t.Run("outputs excluded", func(t *testing.T) {
		other := NewFunction("transfer", f.Inputs(), nil, false)
		if other.Selector() != f.Selector() {
			t.Error("Outputs must not affect the selector")
		}
	})

	t.Run("no inputs", func(t *testing.T) {
		g := NewFunction("totalSupply", nil, Parameters{{Type: UintType(256)}}, true)
		if g.Signature() != "totalSupply()" {
			t.Errorf("Expected totalSupply(), got %s", g.Signature())
		}
		sel := g.Selector()
		if hex.EncodeToString(sel[:]) != "18160ddd" {
			t.Errorf("Expected 18160ddd, got %x", sel)
		}
	})
}

func TestFunctionEncode(t *testing.T) {
	f := newTransfer()
	to := common.HexToAddress("0x3333333333333333333333333333333333333333")

	data, err := f.Encode(to, big.NewInt(1000))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	t.Run("length", func(t *testing.T) {
		if len(data) != 4+64 {
			t.Errorf("Expected 68 bytes, got %d", len(data))
		}
	})

	t.Run("selector prefix", func(t *testing.T) {
		if hex.EncodeToString(data[:4]) != "a9059cbb" {
			t.Errorf("Expected a9059cbb, got %x", data[:4])
		}
	})

	t.Run("arguments", func(t *testing.T) {
		if common.BytesToAddress(data[4:36]) != to {
			t.Error("Recipient mismatch")
		}
		if new(big.Int).SetBytes(data[36:68]).Int64() != 1000 {
			t.Error("Amount mismatch")
		}
	})

	t.Run("decode arguments", func(t *testing.T) {
		args, err := f.DecodeArguments(data)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !equalValues(args, []any{to, big.NewInt(1000)}) {
			t.Errorf("Expected [%s 1000], got %v", to.Hex(), args)
		}
	})
}

func TestFunctionTooManyArguments(t *testing.T) {
	f := newTransfer()

	_, err := f.Encode(common.Address{}, 1, 2)
	if !errors.Is(err, ErrTooManyArguments) {
		t.Errorf("Expected ErrTooManyArguments, got %v", err)
	}
}

func TestFunctionArgumentError(t *testing.T) {
	f := newTransfer()

	_, err := f.Encode(common.Address{}, "lots")

	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("Expected ArgumentError, got %v", err)
	}
	if argErr.Entry != "transfer(address,uint256)" {
		t.Errorf("Expected entry transfer(address,uint256), got %s", argErr.Entry)
	}
	if argErr.Index != 1 {
		t.Errorf("Expected index 1, got %d", argErr.Index)
	}
}

func TestFunctionDecodeArgumentsShortInput(t *testing.T) {
	f := newTransfer()

	_, err := f.DecodeArguments([]byte{0xa9, 0x05})
	if !errors.Is(err, ErrDecodeOutOfBounds) {
		t.Errorf("Expected ErrDecodeOutOfBounds, got %v", err)
	}

	_, err = f.DecodeArguments(common.Hex2Bytes("a9059cbb"))
	if !errors.Is(err, ErrDecodeOutOfBounds) {
		t.Errorf("Expected ErrDecodeOutOfBounds for missing arguments, got %v", err)
	}
}

func TestFunctionResult(t *testing.T) {
	f := NewFunction("getReserves", nil, Parameters{
		{Name: "reserve0", Type: UintType(112)},
		{Name: "reserve1", Type: UintType(112)},
		{Name: "blockTimestampLast", Type: UintType(32)},
	}, true)

	ret, err := f.EncodeResult(big.NewInt(5000), big.NewInt(7000), uint32(1700000000))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ret) != 96 {
		t.Errorf("Expected 96 bytes of return data, got %d", len(ret))
	}

	values, err := f.DecodeResult(ret)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []any{big.NewInt(5000), big.NewInt(7000), big.NewInt(1700000000)}
	if !equalValues(values, want) {
		t.Errorf("Expected %v, got %v", want, values)
	}

	t.Run("no selector stripped", func(t *testing.T) {
		_, err := f.DecodeResult(ret[4:])
		if !errors.Is(err, ErrDecodeOutOfBounds) {
			t.Errorf("Expected ErrDecodeOutOfBounds on misaligned data, got %v", err)
		}
	})
}

func TestFunctionDynamicResult(t *testing.T) {
	f := NewFunction("symbol", nil, Parameters{{Type: StringType()}}, true)

	ret := append(words(32, 4), padded("WETH")...)
	values, err := f.DecodeResult(ret)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if values[0] != "WETH" {
		t.Errorf("Expected WETH, got %v", values[0])
	}
}

func TestConstructor(t *testing.T) {
	c := NewConstructor(Parameters{{Name: "name", Type: StringType()}, {Name: "supply", Type: UintType(256)}})

	if c.Type() != ConstructorEntry {
		t.Errorf("Expected constructor type, got %s", c.Type())
	}
	if !c.IsConstructor() {
		t.Error("Expected IsConstructor")
	}

	args, err := c.EncodeArguments("Token", big.NewInt(1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := append(words(64, 1, 5), padded("Token")...)
	if !bytes.Equal(args, want) {
		t.Errorf("Expected\n%x\ngot\n%x", want, args)
	}
}

func TestFunctionString(t *testing.T) {
	tests := []struct {
		name string
		fn   *Function
		want string
	}{
		{"transfer", newTransfer(), "function transfer(address to, uint256 amount) returns(bool);"},
		{"constant", NewFunction("balanceOf",
			Parameters{{Name: "owner", Type: AddressType()}},
			Parameters{{Type: UintType(256)}, {Type: BoolType()}}, true),
			"function balanceOf(address owner) constant returns(uint256, bool);"},
		{"no outputs", NewFunction("poke", nil, nil, false), "function poke();"},
		{"constructor", NewConstructor(Parameters{{Name: "owner", Type: AddressType()}}), "constructor(address owner);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fn.String() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, tt.fn.String())
			}
		})
	}
}

func TestFunctionImmutableParameters(t *testing.T) {
	inputs := Parameters{{Name: "to", Type: AddressType()}}
	f := NewFunction("f", inputs, nil, false)

	inputs[0].Type = BoolType()
	if f.Signature() != "f(address)" {
		t.Error("Mutating the constructor argument must not affect the function")
	}

	got := f.Inputs()
	got[0].Name = "changed"
	if f.Inputs()[0].Name != "to" {
		t.Error("Mutating returned inputs must not affect the function")
	}
}
