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

package edn

import (
	"io"
	"strings"

	"github.com/google/ednio/textpos"
)

// Source is a finite, non-restartable stream of characters with pushback and
// line/column tracking.
//
// Next returns io.EOF once the underlying reader is exhausted. Characters
// passed to PushBack are returned by subsequent calls to Next in last-in,
// first-out order. Positions are derived from the number of characters
// consumed, so pushing a character back also moves the position back.
type Source struct {
	name   string
	rr     io.RuneReader
	pushed []rune
	// offset is the number of characters consumed net of pushback.
	offset int
	// pulled is the number of characters read from rr.
	pulled int
	lines  *textpos.LineTable
}

// NewSource returns a Source reading from rr. name is used in error messages
// only.
func NewSource(name string, rr io.RuneReader) *Source {
	return &Source{
		name:  name,
		rr:    rr,
		lines: textpos.NewLineTable(),
	}
}

// NewStringSource returns a Source reading the characters of s.
func NewStringSource(name, s string) *Source {
	return NewSource(name, strings.NewReader(s))
}

// Name returns the name of the source.
func (s *Source) Name() string { return s.name }

// Next consumes and returns the next character. It returns io.EOF at the end
// of input.
func (s *Source) Next() (rune, error) {
	if n := len(s.pushed); n > 0 {
		r := s.pushed[n-1]
		s.pushed = s.pushed[:n-1]
		s.offset++
		return r, nil
	}
	r, _, err := s.rr.ReadRune()
	if err != nil {
		return 0, err
	}
	s.pulled++
	s.offset++
	if r == '\n' {
		s.lines.AddLine(s.pulled)
	}
	return r, nil
}

// PushBack un-consumes r so that it is returned by the next call to Next.
// It is normally called with the character most recently returned by Next.
func (s *Source) PushBack(r rune) {
	s.pushed = append(s.pushed, r)
	s.offset--
}

// Peek returns the next character without consuming it.
func (s *Source) Peek() (rune, error) {
	r, err := s.Next()
	if err != nil {
		return 0, err
	}
	s.PushBack(r)
	return r, nil
}

// Offset returns the number of characters consumed so far.
func (s *Source) Offset() int { return s.offset }

// Position returns the position of the next character to be consumed.
func (s *Source) Position() textpos.LineColumn { return s.PositionAt(s.offset) }

// PositionAt returns the position of the character at offset, which must not
// be past the furthest point read so far.
func (s *Source) PositionAt(offset int) textpos.LineColumn {
	return s.lines.LineColumn(offset)
}

// Span returns the range from the character at start up to the current
// position.
func (s *Source) Span(start int) textpos.Range {
	return textpos.MakeRange(s.PositionAt(start), s.Position())
}
