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

package formcmp

import (
	"testing"

	"github.com/google/ednio/edn/form"
	"github.com/google/ednio/textpos"
	"github.com/google/go-cmp/cmp"
)

func span(line, startCol, endCol int) textpos.Range {
	return textpos.MakeRange(
		textpos.MakeLineColumn(textpos.LineFromOrdinal(line), textpos.ColumnFromOrdinal(startCol)),
		textpos.MakeLineColumn(textpos.LineFromOrdinal(line), textpos.ColumnFromOrdinal(endCol)))
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name        string
		left, right form.Form
		opts        []Option
		wantEqual   bool
	}{
		{
			name:      "same vector, different spans, spans ignored",
			left:      form.NewVector([]form.Form{form.MakeInt(1)}, span(1, 1, 4)),
			right:     form.NewVector([]form.Form{form.MakeInt(1)}, textpos.Range{}),
			opts:      []Option{IgnoreSourcePositions()},
			wantEqual: true,
		},
		{
			name:      "same vector, different spans",
			left:      form.NewVector([]form.Form{form.MakeInt(1)}, span(1, 1, 4)),
			right:     form.NewVector([]form.Form{form.MakeInt(1)}, textpos.Range{}),
			wantEqual: false,
		},
		{
			name:      "list vs vector",
			left:      form.NewList(nil, textpos.Range{}),
			right:     form.NewVector(nil, textpos.Range{}),
			opts:      []Option{IgnoreSourcePositions()},
			wantEqual: false,
		},
		{
			name: "map pairs in order",
			left: form.NewMap([]form.Pair{
				{Key: form.MakeKeyword("a"), Val: form.MakeInt(1)},
			}, textpos.Range{}),
			right: form.NewMap([]form.Pair{
				{Key: form.MakeKeyword("a"), Val: form.MakeInt(2)},
			}, textpos.Range{}),
			opts:      []Option{IgnoreSourcePositions()},
			wantEqual: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cmp.Equal(tt.left, tt.right, Transform(tt.opts...))
			if got != tt.wantEqual {
				t.Errorf("cmp.Equal(%s, %s) = %v, want %v; diff:\n%s", tt.left, tt.right, got, tt.wantEqual,
					cmp.Diff(tt.left, tt.right, Transform(tt.opts...)))
			}
		})
	}
}

func TestEquateForms(t *testing.T) {
	left := []form.Form{form.MakeRatio(1, 2), form.NewSet([]form.Form{form.MakeInt(1), form.MakeInt(2)}, span(1, 1, 7))}
	right := []form.Form{form.MakeRatio(2, 4), form.NewSet([]form.Form{form.MakeInt(2), form.MakeInt(1)}, textpos.Range{})}
	if diff := cmp.Diff(left, right, EquateForms()); diff != "" {
		t.Errorf("unexpected diff:\n%s", diff)
	}
}

func TestNodes(t *testing.T) {
	forms := []form.Form{
		form.NewVector([]form.Form{form.MakeInt(1), form.MakeKeyword("k")}, span(1, 1, 7)),
		form.MakeSymbol("x"),
	}
	want := []Node{
		{Type: "Vector", Span: "1:1-7", Children: []Node{
			{Type: "Integer", Span: "-", Text: "1"},
			{Type: "Keyword", Span: "-", Text: ":k"},
		}},
		{Type: "Symbol", Span: "-", Text: "x"},
	}
	if diff := cmp.Diff(want, Nodes(forms)); diff != "" {
		t.Errorf("Nodes() unexpected diff (-want +got):\n%s", diff)
	}
	if got := Nodes(forms, IgnoreSourcePositions())[0].Span; got != "" {
		t.Errorf("Nodes(IgnoreSourcePositions()) span = %q, want empty", got)
	}
}
