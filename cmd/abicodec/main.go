// abicodec encodes and decodes Solidity ABI payloads from the command line.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/branched-services/go-solabi"
)

var (
	abiFlag = &cli.StringFlag{
		Name:    "abi",
		Usage:   "Path to the JSON ABI description",
		EnvVars: []string{"ABICODEC_ABI"},
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log.format",
		Usage: "Log format to use (json|logfmt|terminal)",
		Value: "terminal",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "abicodec",
		Usage: "encode calls and decode return data and event logs using a contract ABI",
		Flags: []cli.Flag{abiFlag, verbosityFlag, logFormatFlag},
		Before: func(ctx *cli.Context) error {
			return setupLogging(ctx)
		},
		Commands: []*cli.Command{
			signatureCommand,
			encodeCommand,
			decodeArgsCommand,
			decodeResultCommand,
			decodeEventCommand,
			wordsCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs the root logger according to the logging flags.
func setupLogging(ctx *cli.Context) error {
	output := ctx.App.ErrWriter
	if output == nil {
		output = os.Stderr
	}
	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))

	var handler slog.Handler
	switch format := ctx.String(logFormatFlag.Name); format {
	case "json":
		handler = log.JSONHandlerWithLevel(output, level)
	case "logfmt":
		handler = log.LogfmtHandlerWithLevel(output, level)
	case "", "terminal":
		useColor := false
		if output == os.Stderr {
			fd := os.Stderr.Fd()
			useColor = (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
			if useColor {
				output = colorable.NewColorableStderr()
			}
		}
		handler = log.NewTerminalHandlerWithLevel(output, level, useColor)
	default:
		return fmt.Errorf("unknown log format: %v", format)
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

// loadABI reads the description named by --abi.
func loadABI(ctx *cli.Context) (*solabi.ABI, error) {
	path := ctx.String(abiFlag.Name)
	if path == "" {
		return nil, fmt.Errorf("missing --%s flag", abiFlag.Name)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, err := solabi.ReadABI(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("Loaded ABI", "path", path, "entries", parsed.Len())
	return parsed, nil
}

func stdout(ctx *cli.Context) io.Writer {
	if ctx.App.Writer != nil {
		return ctx.App.Writer
	}
	return os.Stdout
}
