package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/MRepoApp/prop-go/schema"
)

type validateConfig struct {
	*cli.Command
	Schema  string `cli:"name=schema aliases=s desc='schema file to validate against'"`
	Verbose bool   `cli:"name=verbose aliases=v desc='log debug output to stderr'"`
}

func validateCommand() *cli.Command {
	cfg := &validateConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "validate").
		WithSynopsis("validate --schema <schema> [file] - check a document against a schema").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *validateConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Schema == "" {
		return fmt.Errorf("%w: --schema is required", cli.ErrUsage)
	}
	log := newLogger(cfg.Verbose)

	schemaBytes, err := os.ReadFile(cfg.Schema)
	if err != nil {
		return fmt.Errorf("error reading schema file: %w", err)
	}
	s, err := schema.Parse(schemaBytes)
	if err != nil {
		return fmt.Errorf("error parsing schema: %w", err)
	}
	log.Debug("parsed schema", "name", cfg.Schema, "keys", len(s.Keys()))

	name, data, err := readInput(cc, log, args)
	if err != nil {
		return err
	}

	errs := s.Validate(data)
	where := newColor(cc.Out, color.Bold)
	problem := newColor(cc.Out, color.FgRed)
	for _, err := range errs {
		fmt.Fprintf(cc.Out, "%s %s\n", where.Sprintf("%s:%d:", name, err.Lno()), problem.Sprint(err.Msg()))
	}
	if len(errs) > 0 {
		log.Debug("validation failed", "name", name, "errors", len(errs))
		return cli.ExitCodeErr(1)
	}
	return nil
}
