package solabi

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

const tupleABIJSON = `[
	{
		"type": "function",
		"name": "submit",
		"stateMutability": "payable",
		"inputs": [
			{
				"name": "order",
				"type": "tuple",
				"internalType": "struct Exchange.Order",
				"components": [
					{"name": "maker", "type": "address"},
					{"name": "amounts", "type": "uint256[]"},
					{"name": "memo", "type": "string"}
				]
			},
			{
				"name": "legs",
				"type": "tuple[2]",
				"components": [
					{"name": "id", "type": "uint32"},
					{"name": "flag", "type": "bool"}
				]
			}
		],
		"outputs": [{"name": "ok", "type": "bool"}]
	},
	{"type": "fallback", "stateMutability": "payable"},
	{"type": "receive", "stateMutability": "payable"},
	{"type": "error", "name": "Unauthorized", "inputs": [{"name": "caller", "type": "address"}]}
]`

func TestParseABIConstant(t *testing.T) {
	tests := []struct {
		name     string
		entry    string
		constant bool
	}{
		{"view", `{"type":"function","name":"f","stateMutability":"view","inputs":[]}`, true},
		{"pure", `{"type":"function","name":"f","stateMutability":"pure","inputs":[]}`, true},
		{"nonpayable", `{"type":"function","name":"f","stateMutability":"nonpayable","inputs":[]}`, false},
		{"payable", `{"type":"function","name":"f","stateMutability":"payable","inputs":[]}`, false},
		{"legacy constant flag", `{"type":"function","name":"f","constant":true,"inputs":[]}`, true},
		{"missing type defaults to function", `{"name":"f","inputs":[]}`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseABI("[" + tc.entry + "]")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			f := parsed.MustFunction("f")
			if f.Constant() != tc.constant {
				t.Errorf("Expected constant=%v, got %v", tc.constant, f.Constant())
			}
		})
	}
}

func TestParseABITuples(t *testing.T) {
	parsed, err := ParseABI(tupleABIJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	t.Run("skips entries without codec", func(t *testing.T) {
		if parsed.Len() != 1 {
			t.Errorf("Expected 1 entry, got %d", parsed.Len())
		}
	})

	submit := parsed.MustFunction("submit")

	t.Run("canonical signature", func(t *testing.T) {
		want := "submit((address,uint256[],string),(uint32,bool)[2])"
		if submit.Signature() != want {
			t.Errorf("Expected %s, got %s", want, submit.Signature())
		}
	})

	t.Run("component names", func(t *testing.T) {
		order := submit.Inputs()[0].Type
		if order.Kind != TupleKind || len(order.FieldNames) != 3 || order.FieldNames[1] != "amounts" {
			t.Errorf("Unexpected order type %+v", order)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		maker := common.HexToAddress("0x4444444444444444444444444444444444444444")
		order := []any{maker, []any{big.NewInt(10), big.NewInt(20)}, "gm"}
		legs := []any{[]any{big.NewInt(1), true}, []any{big.NewInt(2), false}}

		payload, err := submit.Encode(order, legs)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		got, err := submit.DecodeArguments(payload)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !equalValues(got, []any{order, legs}) {
			t.Errorf("Expected %v, got %v", []any{order, legs}, got)
		}
	})
}

func TestParseABIErrors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{"not json", `{`, ErrMalformedDescription},
		{"not an array", `{"type":"function"}`, ErrMalformedDescription},
		{"bad type", `[{"type":"function","name":"f","inputs":[{"name":"x","type":"uint7"}]}]`, ErrMalformedDescription},
		{"bad output type", `[{"type":"function","name":"f","inputs":[],"outputs":[{"type":"bytes33"}]}]`, ErrMalformedDescription},
		{"unknown entry", `[{"type":"modifier","name":"onlyOwner","inputs":[]}]`, ErrUnknownEntryType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseABI(tc.json)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestMustParseABIPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected MustParseABI to panic")
		}
	}()
	MustParseABI(`[{"type":"bogus"}]`)
}

func TestReadABI(t *testing.T) {
	parsed, err := ReadABI(strings.NewReader(testABIJSON))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if parsed.Len() != 7 {
		t.Errorf("Expected 7 entries, got %d", parsed.Len())
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	for name, src := range map[string]string{"erc": testABIJSON, "tuple": tupleABIJSON} {
		t.Run(name, func(t *testing.T) {
			parsed := MustParseABI(src)

			out, err := parsed.MarshalJSON()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			again, err := ParseABI(string(out))
			if err != nil {
				t.Fatalf("Reparse failed: %v\n%s", err, out)
			}
			if again.Len() != parsed.Len() {
				t.Fatalf("Expected %d entries, got %d", parsed.Len(), again.Len())
			}

			before, after := parsed.Entries(), again.Entries()
			for i := range before {
				if before[i].Type() != after[i].Type() {
					t.Errorf("Entry %d: expected type %s, got %s", i, before[i].Type(), after[i].Type())
				}
				if before[i].String() != after[i].String() {
					t.Errorf("Entry %d: expected %q, got %q", i, before[i].String(), after[i].String())
				}
			}

			if parsed.String() != string(out) {
				t.Error("Expected String to return the JSON description")
			}
		})
	}
}
