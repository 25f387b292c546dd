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

package textpos

import (
	"fmt"
	"testing"
)

var lineTests = []struct {
	name   string
	source string
	lines  []int
}{
	{"empty", "", []int{0}},
	{"one line", "01234", []int{0}},
	{"only newlines", "\n\n\n\n", []int{0, 1, 2, 3, 4}},
	{"no trailing newline", "(a b)\n\n[c]", []int{0, 6, 7}},
	{"trailing newline", "(a b)\n\n[c]\n", []int{0, 6, 7, 11}},
	{"multibyte runes", "é\n\"日本\"\n x", []int{0, 2, 7}},
}

// linecol computes the expected position of offs by linear search.
func linecol(lines []int, offs int) LineColumn {
	line := 0
	for i, start := range lines {
		if start <= offs {
			line = i
		}
	}
	return MakeLineColumn(LineFromOffset(line), ColumnFromOffset(offs-lines[line]))
}

func TestLineTableForContent(t *testing.T) {
	for _, tt := range lineTests {
		t.Run(tt.name, func(t *testing.T) {
			table := LineTableForContent(tt.source)
			if got, want := table.LineCount(), len(tt.lines); got != want {
				t.Fatalf("LineCount() = %d, want %d", got, want)
			}
			size := len([]rune(tt.source))
			for offs := 0; offs <= size; offs++ {
				want := linecol(tt.lines, offs)
				got := table.LineColumn(offs)
				if got != want {
					t.Errorf("LineColumn(%d) = %v, want %v", offs, got, want)
				}
				if offs < size {
					if back := table.Offset(got); back != offs {
						t.Errorf("Offset(%v) = %d, want %d", got, back, offs)
					}
				}
			}
		})
	}
}

func TestAddLine(t *testing.T) {
	for _, tt := range lineTests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewLineTable()
			for i, offset := range tt.lines {
				table.AddLine(offset)
				if got := table.LineCount(); got != i+1 {
					t.Errorf("AddLine(%d): got line count %d; want %d", offset, got, i+1)
				}
				// adding the same offset again should be ignored
				table.AddLine(offset)
				if got := table.LineCount(); got != i+1 {
					t.Errorf("AddLine(%d) twice: got line count %d; want %d", offset, got, i+1)
				}
				start, ok := table.LineStart(LineFromOffset(i))
				if !ok || start != offset {
					t.Errorf("LineStart(%d) = %d, %v; want %d, true", i+1, start, ok, offset)
				}
			}
		})
	}
}

func TestLineTableUnknownPositions(t *testing.T) {
	table := LineTableForContent("ab\ncd")
	if lc := table.LineColumn(-1); lc.IsValid() {
		t.Errorf("LineColumn(-1) = %v, want invalid", lc)
	}
	if _, ok := table.LineStart(LineFromOrdinal(3)); ok {
		t.Errorf("LineStart(3) reported an unrecorded line")
	}
	for _, lc := range []LineColumn{
		{},
		MakeLineColumn(LineFromOrdinal(3), ColumnFromOrdinal(1)),
		MakeLineColumn(LineFromOrdinal(1), ColumnFromOrdinal(4)),
	} {
		if got := table.Offset(lc); got != -1 {
			t.Errorf("Offset(%v) = %d, want -1", lc, got)
		}
	}
}

func TestRangeString(t *testing.T) {
	at := func(line, col int) LineColumn {
		return MakeLineColumn(LineFromOrdinal(line), ColumnFromOrdinal(col))
	}
	tests := []struct {
		r    Range
		want string
	}{
		{MakeRange(at(1, 1), at(1, 12)), "1:1-12"},
		{MakeRange(at(2, 3), at(4, 1)), "2:3-4:1"},
		{MakeRange(at(1, 5), at(1, 5)), "1:5-5"},
		{MakeRange(at(1, 5), at(1, 2)), "-"},
		{Range{}, "-"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.want), func(t *testing.T) {
			if got := tt.r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineColumnBefore(t *testing.T) {
	a := MakeLineColumn(LineFromOrdinal(1), ColumnFromOrdinal(9))
	b := MakeLineColumn(LineFromOrdinal(2), ColumnFromOrdinal(1))
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Errorf("Before gave wrong answers for %v and %v", a, b)
	}
	if got, want := a.String(), "1:9"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
