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

// Package formcmp provides testing facilities for using the cmp package
// with edn forms.
package formcmp

import (
	"fmt"
	"strings"

	"github.com/google/ednio/edn/form"
	"github.com/google/go-cmp/cmp"
)

// Node is the comparable representation of a form produced by Transform.
type Node struct {
	Type     string
	Text     string `json:",omitempty"`
	Span     string `json:",omitempty"`
	Children []Node `json:",omitempty"`
}

// Transform returns a cmp.Option that converts every form.Form into a Node
// tree before comparison, so that diffs print EDN text instead of struct
// internals.
//
// Source positions are compared unless IgnoreSourcePositions is passed.
func Transform(thisLibraryOpt ...Option) cmp.Option {
	p := newParams(thisLibraryOpt)
	return cmp.Transformer("formcmp.Node", func(f form.Form) Node {
		return p.node(f)
	})
}

// Nodes converts forms into the Node trees used by Transform, for comparing
// reader output against hand-written expectations.
func Nodes(forms []form.Form, thisLibraryOpt ...Option) []Node {
	p := newParams(thisLibraryOpt)
	out := make([]Node, 0, len(forms))
	for _, f := range forms {
		out = append(out, p.node(f))
	}
	return out
}

func newParams(opts []Option) *params {
	p := &params{compareSpans: true}
	for _, o := range opts {
		o.setParams(p)
	}
	return p
}

// Option configures the Transform function.
type Option struct {
	setParams func(p *params)
}

type params struct {
	compareSpans bool
}

// IgnoreSourcePositions makes Transform ignore the source positions of forms.
func IgnoreSourcePositions() Option {
	return Option{
		setParams: func(p *params) {
			p.compareSpans = false
		},
	}
}

// EquateForms returns a cmp.Option that compares forms with form.Equal, which
// ignores source positions and treats ratios and sets by value.
func EquateForms() cmp.Option {
	return cmp.Comparer(form.Equal)
}

func (p *params) node(f form.Form) Node {
	if f == nil {
		return Node{Type: "<nil>"}
	}
	n := Node{Type: strings.TrimPrefix(fmt.Sprintf("%T", f), "*form.")}
	if p.compareSpans {
		n.Span = f.SourcePosition().String()
	}
	switch f := f.(type) {
	case *form.Map:
		for i := 0; i < f.Len(); i++ {
			pair := f.Pair(i)
			n.Children = append(n.Children, p.node(pair.Key), p.node(pair.Val))
		}
	case *form.Tagged:
		n.Text = f.Tag().String()
		n.Children = []Node{p.node(f.Element())}
	case form.Sequential:
		for i := 0; i < f.Len(); i++ {
			n.Children = append(n.Children, p.node(f.Nth(i)))
		}
	default:
		n.Text = f.String()
	}
	return n
}
