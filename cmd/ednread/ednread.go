// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Program ednread reads EDN files and prints their forms as EDN, JSON or YAML.
//
// Arguments are file paths or doublestar patterns such as "conf/**/*.edn". With
// no arguments, or the argument "-", standard input is read. Outputs appear in
// argument order even though inputs are read in parallel. Malformed input is
// reported on stderr with the offending line and the program exits with
// status 1.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/google/ednio/edn"
	"github.com/google/ednio/edn/form"
	"github.com/google/ednio/ednconv"
)

var cfg = registerFlags(flag.CommandLine)

type config struct {
	format    string
	keyCase   string
	indent    string
	parallel  int
	watch     bool
	maxDepth  int
	tagged    bool
	wrapWidth int
}

func registerFlags(fs *flag.FlagSet) *config {
	cfg := &config{}
	fs.StringVar(&cfg.format, "format", "edn", "output format: edn, json or yaml")
	fs.StringVar(&cfg.keyCase, "key_case", "none", "rewrite keyword map keys for json and yaml output: none, snake, camel or upper_camel")
	fs.StringVar(&cfg.indent, "indent", "", "indentation string for json output; empty for compact output")
	fs.IntVar(&cfg.parallel, "parallel", 4, "maximum number of inputs read concurrently")
	fs.BoolVar(&cfg.watch, "watch", false, "after printing, keep running and print files again when they change")
	fs.IntVar(&cfg.maxDepth, "max_depth", 0, "maximum collection nesting depth; 0 means unlimited")
	fs.BoolVar(&cfg.tagged, "tagged", false, "accept tagged literals such as #inst \"...\"")
	fs.IntVar(&cfg.wrapWidth, "wrap", 100, "column at which error messages are wrapped")
	return cfg
}

func main() {
	flag.Parse()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, cfg, flag.Args(), os.Stdin, os.Stdout, os.Stderr)
	cancel()
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal ednread error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	p, err := newPrinter(cfg)
	if err != nil {
		return err
	}
	inputs, err := expandArgs(args)
	if err != nil {
		return err
	}
	results, err := readInputs(ctx, inputs, stdin, cfg.parallel, p.readOpts)
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		if !p.report(r, stdout, stderr) {
			failed++
		}
	}
	if cfg.watch {
		return watch(ctx, inputs, p, stdout, stderr)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be read", failed, len(results))
	}
	return nil
}

// printer renders forms in the configured output format.
type printer struct {
	format   string
	width    int
	readOpts []edn.Option
	convOpts []ednconv.Option
}

func newPrinter(cfg *config) (*printer, error) {
	switch cfg.format {
	case "edn", "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown output format %q, want edn, json or yaml", cfg.format)
	}
	keyCase, err := ednconv.ParseKeyCase(cfg.keyCase)
	if err != nil {
		return nil, err
	}
	if cfg.parallel < 1 {
		return nil, fmt.Errorf("-parallel must be at least 1, got %d", cfg.parallel)
	}
	p := &printer{
		format:   cfg.format,
		width:    cfg.wrapWidth,
		readOpts: []edn.Option{edn.WithMaxDepth(cfg.maxDepth)},
		convOpts: []ednconv.Option{ednconv.WithKeyCase(keyCase), ednconv.WithIndent(cfg.indent)},
	}
	if cfg.tagged {
		table := edn.DefaultMacroTable()
		edn.EnableTaggedLiterals(table)
		p.readOpts = append(p.readOpts, edn.WithMacroTable(table))
	}
	return p, nil
}

func (p *printer) render(f form.Form) ([]byte, error) {
	switch p.format {
	case "json":
		data, err := ednconv.MarshalJSON(f, p.convOpts...)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := ednconv.MarshalYAML(f, p.convOpts...)
		if err != nil {
			return nil, err
		}
		return append([]byte("---\n"), data...), nil
	}
	return []byte(f.String() + "\n"), nil
}

// report writes the forms of r to stdout, or a diagnostic to stderr. It
// returns false if r could not be read or converted.
func (p *printer) report(r *result, stdout, stderr io.Writer) bool {
	if r.err != nil {
		fmt.Fprintln(stderr, edn.Diagnostic(r.err, r.contents, p.width))
		return false
	}
	for _, f := range r.forms {
		data, err := p.render(f)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", r.name, err)
			return false
		}
		if _, err := stdout.Write(data); err != nil {
			glog.Errorf("error writing output for %s: %v", r.name, err)
			return false
		}
	}
	return true
}
