package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/MRepoApp/prop-go"
)

type getConfig struct {
	*cli.Command
	Verbose bool `cli:"name=verbose aliases=v desc='log debug output to stderr'"`
}

func getCommand() *cli.Command {
	cfg := &getConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "get").
		WithSynopsis("get <key> [file] - print the value of key").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *getConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a key", cli.ErrUsage)
	}
	log := newLogger(cfg.Verbose)
	key := args[0]
	name, data, err := readInput(cc, log, args[1:])
	if err != nil {
		return err
	}

	value, found := lookup(data, key)
	if !found {
		log.Debug("key not found", "name", name, "key", key)
		return cli.ExitCodeErr(1)
	}
	fmt.Fprintln(cc.Out, value)
	return nil
}

// lookup returns the value of the last occurrence of key, which is the
// value Unmarshal would keep.
func lookup(data []byte, key string) (string, bool) {
	value, found := "", false
	for entry := range prop.Entries(data) {
		if entry.Key == key {
			value, found = entry.Value, true
		}
	}
	return value, found
}
