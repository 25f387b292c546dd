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

package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/golang/glog"
	"github.com/google/ednio/edn"
	"github.com/google/ednio/edn/form"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const stdinName = "<stdin>"

// input is a file to read. An empty path means standard input.
type input struct {
	name, path string
}

// result holds the forms read from an input, or the error that stopped
// reading. contents is kept for rendering diagnostics.
type result struct {
	name     string
	contents string
	forms    []form.Form
	err      error
}

// expandArgs turns command line arguments into inputs. Arguments containing
// glob metacharacters are expanded with doublestar and must match at least
// one file.
func expandArgs(args []string) ([]input, error) {
	if len(args) == 0 {
		return []input{{name: stdinName}}, nil
	}
	var inputs []input
	for _, arg := range args {
		switch {
		case arg == "-":
			inputs = append(inputs, input{name: stdinName})
		case strings.ContainsAny(arg, "*?[{"):
			matches, err := doublestar.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("pattern %q matched no files", arg)
			}
			sort.Strings(matches)
			for _, m := range matches {
				inputs = append(inputs, input{name: m, path: m})
			}
		default:
			inputs = append(inputs, input{name: arg, path: arg})
		}
	}
	return inputs, nil
}

// readInputs reads at most parallel inputs at a time. The results are in the
// order of inputs. Errors reading or parsing an input are stored in its
// result; the returned error is only set if ctx is done.
func readInputs(ctx context.Context, inputs []input, stdin io.Reader, parallel int, opts []edn.Option) ([]*result, error) {
	results := make([]*result, len(inputs))
	sem := semaphore.NewWeighted(int64(parallel))
	eg, egCtx := errgroup.WithContext(ctx)
	var stdinOnce stdinReader
	for i, in := range inputs {
		i, in := i, in
		var src io.Reader
		if in.path == "" {
			src = stdinOnce.reader(stdin)
		}
		if err := sem.Acquire(egCtx, 1); err != nil {
			break
		}
		eg.Go(func() error {
			defer sem.Release(1)
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = readInput(in, src, opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// stdinReader hands out standard input to the first "-" argument only; later
// ones read nothing.
type stdinReader struct {
	used bool
}

func (s *stdinReader) reader(stdin io.Reader) io.Reader {
	if s.used || stdin == nil {
		return strings.NewReader("")
	}
	s.used = true
	return stdin
}

func readInput(in input, stdin io.Reader, opts []edn.Option) *result {
	r := &result{name: in.name}
	var data []byte
	var err error
	if in.path == "" {
		data, err = ioutil.ReadAll(stdin)
	} else {
		data, err = ioutil.ReadFile(in.path)
	}
	if err != nil {
		r.err = err
		return r
	}
	r.contents = string(data)
	r.forms, r.err = edn.NewFileReader(in.name, r.contents, opts...).ReadAll()
	glog.V(1).Infof("read %d forms from %s", len(r.forms), in.name)
	return r
}
