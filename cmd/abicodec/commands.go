package main

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/branched-services/go-solabi"
)

const constructorName = "constructor"

var eventFlag = &cli.StringFlag{
	Name:  "event",
	Usage: "Event name, required for anonymous events",
}

var signatureCommand = &cli.Command{
	Name:      "signature",
	Usage:     "Print selectors and topics of the ABI entries",
	ArgsUsage: "[name]",
	Action: func(ctx *cli.Context) error {
		parsed, err := loadABI(ctx)
		if err != nil {
			return err
		}
		name := ctx.Args().First()
		w := stdout(ctx)

		found := false
		for _, e := range parsed.Entries() {
			if name != "" && e.Name() != name {
				continue
			}
			found = true
			switch e.Type() {
			case solabi.ConstructorEntry:
				fmt.Fprintf(w, "%-66s %s\n", constructorName, e.Signature())
			default:
				fmt.Fprintf(w, "%-66s %s\n", hexutil.Encode(e.EncodeSignature()), e.Signature())
			}
		}
		if !found {
			return fmt.Errorf("no entry named %q", name)
		}
		return nil
	},
}

var encodeCommand = &cli.Command{
	Name:      "encode",
	Usage:     "Encode a call to a function, or constructor arguments",
	ArgsUsage: "<function|constructor> [args...]",
	Action: func(ctx *cli.Context) error {
		parsed, err := loadABI(ctx)
		if err != nil {
			return err
		}
		if ctx.NArg() < 1 {
			return fmt.Errorf("missing function name")
		}
		args := ctx.Args().Tail()
		f, err := resolveFunction(parsed, ctx.Args().First(), len(args))
		if err != nil {
			return err
		}

		values, err := parseArgs(f.Inputs(), args)
		if err != nil {
			return err
		}
		var payload []byte
		if f.IsConstructor() {
			payload, err = f.EncodeArguments(values...)
		} else {
			payload, err = f.Encode(values...)
		}
		if err != nil {
			return err
		}
		log.Debug("Encoded call", "signature", f.Signature(), "size", len(payload))
		fmt.Fprintln(stdout(ctx), hexutil.Encode(payload))
		return nil
	},
}

var decodeArgsCommand = &cli.Command{
	Name:      "decode-args",
	Usage:     "Decode call data; the function is looked up by selector unless named",
	ArgsUsage: "[function|constructor] <hex>",
	Action: func(ctx *cli.Context) error {
		parsed, err := loadABI(ctx)
		if err != nil {
			return err
		}
		var (
			f   *solabi.Function
			raw string
		)
		switch ctx.NArg() {
		case 1:
			raw = ctx.Args().First()
		case 2:
			raw = ctx.Args().Get(1)
		default:
			return fmt.Errorf("expected [function] <hex>, got %d arguments", ctx.NArg())
		}
		data, err := hexutil.Decode(raw)
		if err != nil {
			return fmt.Errorf("call data: %w", err)
		}

		if ctx.NArg() == 1 {
			f, err = parsed.FunctionBySelector(data)
		} else {
			f, err = resolveFunction(parsed, ctx.Args().First(), -1)
		}
		if err != nil {
			return err
		}

		var values []any
		if f.IsConstructor() {
			values, err = f.Inputs().Decode(data)
		} else {
			values, err = f.DecodeArguments(data)
		}
		if err != nil {
			return err
		}
		w := stdout(ctx)
		fmt.Fprintln(w, f.Signature())
		printValues(w, f.Inputs(), values)
		return nil
	},
}

var decodeResultCommand = &cli.Command{
	Name:      "decode-result",
	Usage:     "Decode the return data of a function",
	ArgsUsage: "<function> <hex>",
	Action: func(ctx *cli.Context) error {
		parsed, err := loadABI(ctx)
		if err != nil {
			return err
		}
		if ctx.NArg() != 2 {
			return fmt.Errorf("expected <function> <hex>, got %d arguments", ctx.NArg())
		}
		f, err := resolveFunction(parsed, ctx.Args().First(), -1)
		if err != nil {
			return err
		}
		data, err := hexutil.Decode(ctx.Args().Get(1))
		if err != nil {
			return fmt.Errorf("return data: %w", err)
		}

		values, err := f.DecodeResult(data)
		if err != nil {
			return err
		}
		printValues(stdout(ctx), f.Outputs(), values)
		return nil
	},
}

var decodeEventCommand = &cli.Command{
	Name:      "decode-event",
	Usage:     "Decode an event log from its data and topics",
	ArgsUsage: "<data-hex> [topic...]",
	Flags:     []cli.Flag{eventFlag},
	Action: func(ctx *cli.Context) error {
		parsed, err := loadABI(ctx)
		if err != nil {
			return err
		}
		if ctx.NArg() < 1 {
			return fmt.Errorf("missing log data")
		}
		data, err := hexutil.Decode(ctx.Args().First())
		if err != nil {
			return fmt.Errorf("log data: %w", err)
		}
		topics := make([]common.Hash, 0, ctx.NArg()-1)
		for _, s := range ctx.Args().Tail() {
			b, err := hexutil.Decode(s)
			if err != nil || len(b) != common.HashLength {
				return fmt.Errorf("invalid topic %q", s)
			}
			topics = append(topics, common.BytesToHash(b))
		}

		var ev *solabi.Event
		switch {
		case ctx.IsSet(eventFlag.Name):
			ev, err = parsed.Event(ctx.String(eventFlag.Name))
		case len(topics) > 0:
			ev, err = parsed.EventByTopic(topics[0])
		default:
			err = fmt.Errorf("need a signature topic or --%s", eventFlag.Name)
		}
		if err != nil {
			return err
		}

		values, err := ev.Decode(data, topics)
		if err != nil {
			return err
		}
		w := stdout(ctx)
		fmt.Fprintln(w, ev.Signature())
		printValues(w, ev.Inputs(), values)
		return nil
	},
}

var wordsCommand = &cli.Command{
	Name:      "words",
	Usage:     "Split a payload into 32-byte words, skipping a leading selector",
	ArgsUsage: "<hex>",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("expected a single hex payload")
		}
		data, err := hexutil.Decode(ctx.Args().First())
		if err != nil {
			return err
		}
		w := stdout(ctx)
		if len(data)%solabi.WordSize == solabi.SelectorSize {
			fmt.Fprintf(w, "selector %s\n", hexutil.Encode(data[:solabi.SelectorSize]))
			data = data[solabi.SelectorSize:]
		}
		words, err := solabi.SplitWords(data)
		if err != nil {
			return err
		}
		for i, word := range words {
			fmt.Fprintf(w, "0x%04x %s\n", i*solabi.WordSize, word.Hex())
		}
		return nil
	},
}

// resolveFunction finds a function by name. When arity is not negative it
// selects the overload taking that many arguments.
func resolveFunction(parsed *solabi.ABI, name string, arity int) (*solabi.Function, error) {
	if name == constructorName {
		ctor, ok := parsed.Constructor()
		if !ok {
			return nil, &solabi.EntryNotFoundError{Kind: solabi.ConstructorEntry, Key: name}
		}
		return ctor, nil
	}
	if arity < 0 {
		return parsed.Function(name)
	}
	f, ok := parsed.FindFunction(func(f *solabi.Function) bool {
		return !f.IsConstructor() && f.Name() == name && len(f.Inputs()) == arity
	})
	if !ok {
		return nil, &solabi.EntryNotFoundError{Kind: solabi.FunctionEntry, Key: fmt.Sprintf("%s with %d arguments", name, arity)}
	}
	return f, nil
}

func printValues(w io.Writer, params solabi.Parameters, values []any) {
	for i, p := range params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		fmt.Fprintf(w, "%s %s = %s\n", p.Type, name, formatValue(values[i]))
	}
}
