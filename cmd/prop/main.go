// Command prop inspects, formats, validates and converts properties
// documents.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

const usageText = `prop - work with key=value properties documents

Usage:
  prop get <key> [file]                         Print the value of key
  prop fmt [-d] [-w] [--colon] [file]           Print the canonical form
  prop validate --schema <schema> [file]        Check a document against a schema
  prop convert [--from <fmt>] --to <fmt> [file] Convert between prop, json, yaml and toml

With no file, input is read from stdin.`

func root() *cli.Command {
	return cli.NewCommand("prop").
		WithSynopsis("prop - work with key=value properties documents").
		WithDescription(usageText).
		WithSubs(
			getCommand(),
			fmtCommand(),
			validateCommand(),
			convertCommand(),
		)
}

func main() {
	cli.MainContext(context.Background(), root())
}
