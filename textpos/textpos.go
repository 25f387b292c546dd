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

// Package textpos provides types and functions for working with line-based
// positions of text in a textual document.
//
// Lines and columns are stored as ordinals (1 is the first line or column)
// and the zero value of each type is invalid.
package textpos

import "fmt"

// Line is the line number of some text in a file.
type Line struct {
	value int
}

// LineFromOffset returns a Line object from an offset value.
func LineFromOffset(o int) Line { return LineFromOrdinal(o + 1) }

// LineFromOrdinal returns a Line object from a positive value.
func LineFromOrdinal(o int) Line { return Line{o} }

// Offset returns the line number where 0 indicates the first line.
func (n Line) Offset() int { return n.Ordinal() - 1 }

// Ordinal returns the line number where 1 indicates the first line.
func (n Line) Ordinal() int { return n.value }

// String returns the ordinal value encoded as a base 10 string.
func (n Line) String() string { return fmt.Sprintf("%d", n.Ordinal()) }

// IsValid reports if the line value is valid (ordinal >= 1).
func (n Line) IsValid() bool { return n.Ordinal() > 0 }

// Column is a number indicating a horizontal offset within a line of text.
//
// Columns produced by this package count characters (runes), not bytes.
type Column struct {
	value int
}

// ColumnFromOffset returns a Column object from an offset value (where 0 indicates the first column).
func ColumnFromOffset(o int) Column { return ColumnFromOrdinal(o + 1) }

// ColumnFromOrdinal returns a Column object from an ordinal value (where 1 indicates the first column).
func ColumnFromOrdinal(o int) Column { return Column{o} }

// Offset returns the Column number where 0 indicates the first Column.
func (n Column) Offset() int { return n.Ordinal() - 1 }

// Ordinal returns the Column number where 1 indicates the first Column.
func (n Column) Ordinal() int { return n.value }

// String returns the ordinal value encoded as a base 10 string.
func (n Column) String() string { return fmt.Sprintf("%d", n.Ordinal()) }

// IsValid reports if the column value is valid (ordinal >= 1).
func (n Column) IsValid() bool { return n.Ordinal() > 0 }

// LineColumn is a two dimensional textual position (line, column).
type LineColumn struct {
	line Line
	col  Column
}

// MakeLineColumn returns a new LineColumn tuple.
func MakeLineColumn(line Line, col Column) LineColumn {
	return LineColumn{line, col}
}

// Line returns the line for the tuple.
func (p LineColumn) Line() Line { return p.line }

// Column returns the column for the tuple.
func (p LineColumn) Column() Column { return p.col }

// IsValid reports if both the line and the column are valid.
func (p LineColumn) IsValid() bool { return p.line.IsValid() && p.col.IsValid() }

// Before reports whether p comes strictly before q.
func (p LineColumn) Before(q LineColumn) bool {
	if p.line.value != q.line.value {
		return p.line.value < q.line.value
	}
	return p.col.value < q.col.value
}

// String returns a string representation of a LineColumn pair.
//
// If column and line are valid, returns "lineOrdinal:columnOrdinal." Invalid
// parts are printed as "-".
func (p LineColumn) String() string {
	l, c := "-", "-"
	if p.Line().IsValid() {
		l = p.Line().String()
	}
	if p.Column().IsValid() {
		c = p.Column().String()
	}
	return fmt.Sprintf("%s:%s", l, c)
}

// Range is the interval of text [Start, End). End is the position just past
// the last character of the range.
type Range struct {
	start, end LineColumn
}

// MakeRange returns a new Range.
func MakeRange(start, end LineColumn) Range {
	return Range{start, end}
}

// Start returns the inclusive start of the range.
func (r Range) Start() LineColumn { return r.start }

// End returns the exclusive end of the range.
func (r Range) End() LineColumn { return r.end }

// IsValid reports whether both endpoints are valid and start does not come
// after end.
func (r Range) IsValid() bool {
	return r.start.IsValid() && r.end.IsValid() && !r.end.Before(r.start)
}

// String returns "line:col-col" when the range is on a single line and
// "line:col-line:col" otherwise.
func (r Range) String() string {
	if !r.IsValid() {
		return "-"
	}
	if r.start.line == r.end.line {
		return fmt.Sprintf("%s-%s", r.start, r.end.col)
	}
	return fmt.Sprintf("%s-%s", r.start, r.end)
}
