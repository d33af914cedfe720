package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/MRepoApp/prop-go"
)

const stdinName = "<stdin>"

// readInput reads the file named by the first argument, or stdin.
func readInput(cc *cli.Context, log *slog.Logger, args []string) (string, []byte, error) {
	if len(args) > 1 {
		return "", nil, fmt.Errorf("%w: expected at most one input file", cli.ErrUsage)
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cc.In)
		if err != nil {
			return "", nil, fmt.Errorf("error reading stdin: %w", err)
		}
		log.Debug("read input", "name", stdinName, "bytes", len(data))
		return stdinName, data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("error reading %s: %w", args[0], err)
	}
	log.Debug("read input", "name", args[0], "bytes", len(data))
	return args[0], data, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// isTerminal reports whether w is a terminal, in which case output is
// coloured.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func newColor(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if isTerminal(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// colonFormatter writes "key: value" lines, which decode to the same
// entries as the compact "key=value" form.
type colonFormatter struct {
	prop.CompactFormatter
}

func (colonFormatter) EndKey(w io.Writer) error {
	_, err := io.WriteString(w, ":")
	return err
}

func (colonFormatter) BeginValue(w io.Writer) error {
	_, err := io.WriteString(w, " ")
	return err
}

func formatter(colon bool) prop.Formatter {
	if colon {
		return colonFormatter{}
	}
	return prop.CompactFormatter{}
}
