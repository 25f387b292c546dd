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
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
)

// fileWatcher prints a watched file again each time it is written.
type fileWatcher struct {
	printer        *printer
	files          map[string]input
	stdout, stderr io.Writer
}

func newFileWatcher(inputs []input, p *printer, stdout, stderr io.Writer) (*fileWatcher, error) {
	fw := &fileWatcher{
		printer: p,
		files:   make(map[string]input),
		stdout:  stdout,
		stderr:  stderr,
	}
	for _, in := range inputs {
		if in.path == "" {
			continue
		}
		abs, err := filepath.Abs(in.path)
		if err != nil {
			return nil, err
		}
		fw.files[abs] = in
	}
	if len(fw.files) == 0 {
		return nil, errors.New("-watch requires at least one file argument")
	}
	return fw, nil
}

// dirs returns the directories holding watched files. Directories are watched
// instead of files so that editors that replace a file by renaming are seen.
func (fw *fileWatcher) dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for path := range fw.files {
		d := filepath.Dir(path)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// handle reprints the file named by ev if it is watched and was written or
// created. It reports whether the file was printed.
func (fw *fileWatcher) handle(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	in, ok := fw.files[abs]
	if !ok {
		return false
	}
	glog.V(1).Infof("%s changed (%s)", in.name, ev.Op)
	fw.printer.report(readInput(in, nil, fw.printer.readOpts), fw.stdout, fw.stderr)
	return true
}

// watch blocks until ctx is done, printing inputs again when they change.
func watch(ctx context.Context, inputs []input, p *printer, stdout, stderr io.Writer) error {
	fw, err := newFileWatcher(inputs, p, stdout, stderr)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, d := range fw.dirs() {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("cannot watch %s: %w", d, err)
		}
	}
	glog.Infof("watching %d files for changes", len(fw.files))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			fw.handle(ev)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			glog.Warningf("file watch error: %v", err)
		}
	}
}
