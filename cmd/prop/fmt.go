package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/MRepoApp/prop-go"
)

type fmtConfig struct {
	*cli.Command
	Diff    bool `cli:"name=d desc='print a diff instead of the formatted document'"`
	Write   bool `cli:"name=w desc='write the result back to the input file'"`
	Colon   bool `cli:"name=colon desc='write key: value instead of key=value'"`
	Verbose bool `cli:"name=verbose aliases=v desc='log debug output to stderr'"`
}

func fmtCommand() *cli.Command {
	cfg := &fmtConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "fmt").
		WithSynopsis("fmt [-d] [-w] [--colon] [file] - print the canonical form").
		WithDescription("Comments and blank lines are dropped, duplicate keys keep their last value, and keys are sorted.").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *fmtConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires a file", cli.ErrUsage)
	}
	log := newLogger(cfg.Verbose)
	name, data, err := readInput(cc, log, args)
	if err != nil {
		return err
	}

	out, err := canonical(data, formatter(cfg.Colon))
	if err != nil {
		return fmt.Errorf("%s:%w", name, err)
	}

	switch {
	case cfg.Diff:
		printDiff(cc.Out, string(data), string(out))
	case cfg.Write:
		if bytes.Equal(data, out) {
			log.Debug("already formatted", "name", name)
			return nil
		}
		info, err := os.Stat(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(name, out, info.Mode().Perm()); err != nil {
			return err
		}
		log.Info("formatted", "name", name)
	default:
		_, err = cc.Out.Write(out)
		return err
	}
	return nil
}

// canonical decodes data and encodes it again, so the output is exactly
// what a program decoding the document would see.
func canonical(data []byte, f prop.Formatter) ([]byte, error) {
	entries := map[string]*string{}
	if err := prop.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := prop.NewEncoder(&buf)
	enc.SetFormatter(f)
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// printDiff prints a line diff from before to after.
func printDiff(w io.Writer, before, after string) {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	removed := newColor(w, color.FgRed)
	added := newColor(w, color.FgGreen)
	for _, diff := range diffs {
		text := strings.TrimSuffix(diff.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			switch diff.Type {
			case diffpatch.DiffDelete:
				removed.Fprintln(w, "-"+line)
			case diffpatch.DiffInsert:
				added.Fprintln(w, "+"+line)
			case diffpatch.DiffEqual:
				fmt.Fprintln(w, " "+line)
			}
		}
	}
}
