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

// LineTable maps character offsets in a document to (line, column) positions.
//
// The table is built incrementally: a reader that consumes a document one
// character at a time calls AddLine with the offset of the first character of
// each new line as it is discovered. Lookups for offsets at or past the last
// recorded line start are attributed to the last line, so a table is usable
// before the whole document has been seen.
//
// A LineTable is not safe for concurrent use.
type LineTable struct {
	// lines contains the offset of the first character of each line. The
	// first entry is always 0.
	lines []int
}

// NewLineTable returns a table for a document with a single line starting at
// offset 0.
func NewLineTable() *LineTable {
	return &LineTable{lines: []int{0}}
}

// LineTableForContent returns a table with all line starts of the given text.
// Offsets are measured in runes.
func LineTableForContent(text string) *LineTable {
	t := NewLineTable()
	offset := 0
	for _, r := range text {
		offset++
		if r == '\n' {
			t.AddLine(offset)
		}
	}
	return t
}

// AddLine records the offset of the first character of a new line. The offset
// must be larger than the offset of the previous line; otherwise it is
// ignored. Ignoring out of order offsets allows a reader that rewinds and
// consumes the same newline twice to call AddLine unconditionally.
func (t *LineTable) AddLine(offset int) {
	if len(t.lines) == 0 {
		t.lines = []int{0}
	}
	if offset <= t.lines[len(t.lines)-1] {
		return
	}
	t.lines = append(t.lines, offset)
}

// LineCount returns the number of lines recorded so far.
func (t *LineTable) LineCount() int {
	return len(t.lines)
}

// LineStart returns the offset of the first character of the given line and
// true, or -1 and false if the line has not been recorded.
func (t *LineTable) LineStart(line Line) (int, bool) {
	if !line.IsValid() || line.Offset() >= len(t.lines) {
		return -1, false
	}
	return t.lines[line.Offset()], true
}

// LineColumn returns the position of the character at offset. Negative
// offsets yield an invalid LineColumn.
func (t *LineTable) LineColumn(offset int) LineColumn {
	if offset < 0 || len(t.lines) == 0 {
		return LineColumn{}
	}
	i := searchInts(t.lines, offset)
	return MakeLineColumn(LineFromOffset(i), ColumnFromOffset(offset-t.lines[i]))
}

// Offset is the inverse of LineColumn. It returns -1 if the line is unknown
// or the position is invalid.
func (t *LineTable) Offset(lc LineColumn) int {
	if !lc.IsValid() {
		return -1
	}
	start, ok := t.LineStart(lc.Line())
	if !ok {
		return -1
	}
	offset := start + lc.Column().Offset()
	if next, ok := t.LineStart(LineFromOrdinal(lc.Line().Ordinal() + 1)); ok && offset >= next {
		return -1
	}
	return offset
}

// searchInts returns the index of the last element of a that is <= x. a must
// be sorted in increasing order and a[0] <= x.
func searchInts(a []int, x int) int {
	i, j := 0, len(a)
	for i < j {
		h := i + (j-i)/2
		if a[h] <= x {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}
