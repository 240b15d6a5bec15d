// Package cli wires the Universal Machine core to the process boundary:
// the program file (or stdin) source, stdio streams, and the
// fault-diagnostic logger. Argument parsing (cobra) lives in cmd/um,
// which fills Options. It mirrors the shape of this project's ancestor's
// cmd/vm and cmd/interp entry points, ported from log.Fatal to a
// constructed zap logger.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/basso-um/um/internal/loader"
	"github.com/basso-um/um/pkg/machine"
)

// Options holds the parsed command-line configuration for Run.
type Options struct {
	// ProgramPath is the path to the program file. Empty means read the
	// program from standard input, per spec.md §6.
	ProgramPath string

	// Verbose enables development-mode (human-readable) logging instead
	// of the default production (structured JSON) logger. This is a
	// logging-format knob only; it never enables tracing or stepping,
	// both explicit Non-goals.
	Verbose bool
}

// Run loads a program per Options, executes it to completion, and
// returns the process exit code: 0 on HALT, non-zero on fault.
func Run(opts Options) int {
	logger, err := newLogger(opts.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "um: cannot initialise logger: %s\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	source, closeSource, err := openSource(opts.ProgramPath)
	if err != nil {
		logger.Error("cannot open program", zap.Error(err))
		return 1
	}
	defer closeSource()

	program, err := loader.Load(source)
	if err != nil {
		logger.Error("cannot load program", zap.Error(err))
		return 1
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush() //nolint:errcheck // best-effort, the machine already flushes per-byte

	m := machine.New(program, os.Stdin, stdout)
	if err := m.Run(); err != nil {
		var fault *machine.Fault
		if errors.As(err, &fault) {
			logger.Error("machine halted on fault", zap.String("kind", string(fault.Kind)), zap.Error(fault))
			return 1
		}
		logger.Error("machine failed", zap.Error(err))
		return 1
	}
	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func openSource(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return fp, func() { fp.Close() }, nil
}
