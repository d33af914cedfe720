package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"

	"github.com/MRepoApp/prop-go"
)

type convertConfig struct {
	*cli.Command
	From    string `cli:"name=from desc='input format: prop, json, yaml or toml (default prop)'"`
	To      string `cli:"name=to desc='output format: prop, json, yaml or toml'"`
	Colon   bool   `cli:"name=colon desc='write key: value when converting to prop'"`
	Verbose bool   `cli:"name=verbose aliases=v desc='log debug output to stderr'"`
}

func convertCommand() *cli.Command {
	cfg := &convertConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "convert").
		WithSynopsis("convert [--from <fmt>] --to <fmt> [file] - convert a flat document").
		WithDescription("Only flat documents can be converted: nested objects, tables and lists are rejected.").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *convertConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	from := cfg.From
	if from == "" {
		from = "prop"
	}
	if cfg.To == "" {
		return fmt.Errorf("%w: --to is required", cli.ErrUsage)
	}
	log := newLogger(cfg.Verbose)
	name, data, err := readInput(cc, log, args)
	if err != nil {
		return err
	}

	var doc document
	switch from {
	case "prop":
		doc, err = readProp(data)
	case "json":
		doc, err = readJSON(data)
	case "yaml":
		doc, err = readYAML(data)
	case "toml":
		doc, err = readTOML(data)
	default:
		return fmt.Errorf("%w: unknown format %q", cli.ErrUsage, from)
	}
	if err != nil {
		return fmt.Errorf("error reading %s: %w", name, err)
	}
	log.Debug("decoded", "name", name, "format", from, "entries", len(doc))

	switch cfg.To {
	case "prop":
		err = writeProp(cc.Out, doc, formatter(cfg.Colon))
	case "json":
		err = writeJSON(cc.Out, doc)
	case "yaml":
		err = writeYAML(cc.Out, doc)
	case "toml":
		err = writeTOML(cc.Out, doc)
	default:
		return fmt.Errorf("%w: unknown format %q", cli.ErrUsage, cfg.To)
	}
	return err
}

type pair struct {
	key   string
	value string
}

// document is a flat, ordered set of keys. Setting a key again replaces its
// value but keeps its first position.
type document []pair

func (d *document) set(key, value string) {
	for i := range *d {
		if (*d)[i].key == key {
			(*d)[i].value = value
			return
		}
	}
	*d = append(*d, pair{key, value})
}

func (d document) toMap() map[string]string {
	m := make(map[string]string, len(d))
	for _, p := range d {
		m[p.key] = p.value
	}
	return m
}

func readProp(data []byte) (document, error) {
	// decode first so that invalid documents are reported the same way
	// as by any other program reading them
	var check map[string]*string
	if err := prop.Unmarshal(data, &check); err != nil {
		return nil, err
	}
	var doc document
	for entry := range prop.Entries(data) {
		doc.set(entry.Key, entry.Value)
	}
	return doc, nil
}

func readJSON(data []byte) (document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil {
		return nil, err
	} else if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected a JSON object")
	}

	var doc document
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := tok.(string)
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case string:
			doc.set(key, v)
		case json.Number:
			doc.set(key, v.String())
		case bool:
			doc.set(key, strconv.FormatBool(v))
		case nil:
			doc.set(key, "")
		default:
			return nil, fmt.Errorf("%s: nested values cannot be converted", key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return doc, nil
}

func readYAML(data []byte) (document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%d: expected a mapping", m.Line)
	}

	var doc document
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%d: keys must be scalars", k.Line)
		}
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%d: %s: nested values cannot be converted", v.Line, k.Value)
		}
		if v.Tag == "!!null" {
			doc.set(k.Value, "")
		} else {
			doc.set(k.Value, v.Value)
		}
	}
	return doc, nil
}

func readTOML(data []byte) (document, error) {
	var values map[string]any
	md, err := toml.Decode(string(data), &values)
	if err != nil {
		return nil, err
	}

	var doc document
	for _, key := range md.Keys() {
		if len(key) != 1 {
			return nil, fmt.Errorf("%s: nested values cannot be converted", key)
		}
		switch v := values[key[0]].(type) {
		case string:
			doc.set(key[0], v)
		case int64:
			doc.set(key[0], strconv.FormatInt(v, 10))
		case float64:
			doc.set(key[0], strconv.FormatFloat(v, 'g', -1, 64))
		case bool:
			doc.set(key[0], strconv.FormatBool(v))
		case time.Time:
			doc.set(key[0], v.Format(time.RFC3339Nano))
		default:
			return nil, fmt.Errorf("%s: %T values cannot be converted", key, v)
		}
	}
	return doc, nil
}

func writeProp(w io.Writer, doc document, f prop.Formatter) error {
	enc := prop.NewEncoder(w)
	enc.SetFormatter(f)
	if err := enc.Encode(doc.toMap()); err != nil {
		return err
	}
	if len(doc) > 0 {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func writeJSON(w io.Writer, doc document) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range doc {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(p.key)
		v, _ := json.Marshal(p.value)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

func writeYAML(w io.Writer, doc document) error {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range doc {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.value},
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

func writeTOML(w io.Writer, doc document) error {
	return toml.NewEncoder(w).Encode(doc.toMap())
}
