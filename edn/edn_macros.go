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
	"math"

	"github.com/golang/glog"
	"github.com/google/ednio/edn/form"
)

// MacroFunc reads the syntax introduced by a macro character. ch is the
// macro character, which has already been consumed. A function that consumes
// input without producing a form returns NoOpResult().
type MacroFunc func(fr *FormReader, ch rune) (Result, error)

// MacroTable maps leading characters to reader functions. Dispatch entries
// are consulted for the character following '#'.
//
// A MacroTable is not safe for concurrent modification. Readers only read
// from their table, so one table may be shared by readers running
// concurrently as long as nobody registers entries at the same time.
type MacroTable struct {
	macros   map[rune]MacroFunc
	dispatch map[rune]MacroFunc
}

// NewMacroTable returns an empty table. A reader using an empty table only
// reads numbers, symbols, nil and booleans.
func NewMacroTable() *MacroTable {
	return &MacroTable{
		macros:   make(map[rune]MacroFunc),
		dispatch: make(map[rune]MacroFunc),
	}
}

var defaultTable = newDefaultMacroTable()

// DefaultMacroTable returns a new table holding the standard macros:
//
//	"   string           \   character
//	:   keyword          ;   comment
//	(   list             [   vector
//	{   map              #   dispatch
//
// and the dispatch macros:
//
//	#{  set              #_  discard the next form
//	##  symbolic values ##Inf, ##-Inf and ##NaN
//
// The returned table may be modified without affecting other readers.
func DefaultMacroTable() *MacroTable {
	return defaultTable.Clone()
}

func newDefaultMacroTable() *MacroTable {
	t := NewMacroTable()
	t.macros['"'] = formMacro((*FormReader).readString)
	t.macros['\\'] = formMacro((*FormReader).readChar)
	t.macros[':'] = formMacro((*FormReader).readKeyword)
	t.macros['('] = formMacro((*FormReader).readList)
	t.macros['['] = formMacro((*FormReader).readVector)
	t.macros['{'] = formMacro((*FormReader).readMap)
	t.macros[';'] = readComment
	t.macros['#'] = readDispatch
	t.dispatch['{'] = formMacro((*FormReader).readSet)
	t.dispatch['_'] = readDiscard
	t.dispatch['#'] = formMacro((*FormReader).readSymbolicValue)
	return t
}

func formMacro(read func(*FormReader, rune) (form.Form, error)) MacroFunc {
	return func(fr *FormReader, ch rune) (Result, error) {
		f, err := read(fr, ch)
		if err != nil {
			return Result{}, err
		}
		return FormResult(f), nil
	}
}

// Clone returns a copy of the table.
func (t *MacroTable) Clone() *MacroTable {
	out := NewMacroTable()
	for ch, fn := range t.macros {
		out.macros[ch] = fn
	}
	for ch, fn := range t.dispatch {
		out.dispatch[ch] = fn
	}
	return out
}

// Register sets the reader function for a leading character. A nil fn
// removes the entry.
func (t *MacroTable) Register(ch rune, fn MacroFunc) {
	register(t.macros, "", ch, fn)
}

// RegisterDispatch sets the reader function for ch following '#'. A nil fn
// removes the entry.
func (t *MacroTable) RegisterDispatch(ch rune, fn MacroFunc) {
	register(t.dispatch, "#", ch, fn)
}

func register(m map[rune]MacroFunc, prefix string, ch rune, fn MacroFunc) {
	if fn == nil {
		delete(m, ch)
		return
	}
	if _, ok := m[ch]; ok {
		glog.V(1).Infof("replacing reader macro for %q", prefix+string(ch))
	}
	m[ch] = fn
}

// Macro returns the reader function for ch, or nil.
func (t *MacroTable) Macro(ch rune) MacroFunc { return t.macros[ch] }

// Dispatch returns the dispatch reader function for ch, or nil.
func (t *MacroTable) Dispatch(ch rune) MacroFunc { return t.dispatch[ch] }

// readComment consumes through the end of the line.
func readComment(fr *FormReader, _ rune) (Result, error) {
	for {
		ch, err := fr.src.Next()
		if err == io.EOF {
			return NoOpResult(), nil
		}
		if err != nil {
			return Result{}, err
		}
		if ch == '\n' {
			return NoOpResult(), nil
		}
	}
}

// readDispatch consults the dispatch table with the character after '#'.
func readDispatch(fr *FormReader, _ rune) (Result, error) {
	start := fr.src.Offset() - 1
	ch, err := fr.src.Next()
	if err == io.EOF {
		return Result{}, fr.errorf(UnexpectedEOF, "#", start, "end of input after dispatch character '#'")
	}
	if err != nil {
		return Result{}, err
	}
	fn := fr.macros.Dispatch(ch)
	if fn == nil {
		return Result{}, fr.errorf(InvalidDispatch, "#"+string(ch), start, "invalid dispatch %q", "#"+string(ch))
	}
	return fn(fr, ch)
}

// readDiscard reads the form after `#_` and drops it.
func readDiscard(fr *FormReader, _ rune) (Result, error) {
	start := fr.src.Offset() - 2
	r, err := fr.Read(NoSentinel)
	if err != nil {
		return Result{}, err
	}
	if r.Kind() == ResultEndOfInput {
		return Result{}, fr.errorf(UnexpectedEOF, "#_", start, "expected a form after #_")
	}
	return NoOpResult(), nil
}

var symbolicValues = map[string]float64{
	"Inf":  math.Inf(1),
	"-Inf": math.Inf(-1),
	"NaN":  math.NaN(),
}

// readSymbolicValue is the dispatch macro for the second '#' of ##Inf.
func (fr *FormReader) readSymbolicValue(_ rune) (form.Form, error) {
	start := fr.src.Offset() - 2
	ch, err := fr.src.Next()
	if err == io.EOF {
		return nil, fr.errorf(UnexpectedEOF, "##", start, "end of input after ##")
	}
	if err != nil {
		return nil, err
	}
	token, err := fr.ReadToken(ch)
	if err != nil {
		return nil, err
	}
	v, ok := symbolicValues[token]
	if !ok {
		return nil, fr.errorf(InvalidDispatch, "##"+token, start, "unknown symbolic value %q", "##"+token)
	}
	return form.NewFloat(v, fr.src.Span(start)), nil
}

// EnableTaggedLiterals registers dispatch macros on t for the letters a-z and
// A-Z so that `#tag value` reads as a *form.Tagged. Tags follow symbol
// syntax, e.g. `#inst` or `#myapp/Person`.
func EnableTaggedLiterals(t *MacroTable) {
	for ch := 'a'; ch <= 'z'; ch++ {
		t.RegisterDispatch(ch, readTagged)
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		t.RegisterDispatch(ch, readTagged)
	}
}

func readTagged(fr *FormReader, ch rune) (Result, error) {
	start := fr.src.Offset() - 2
	token, err := fr.ReadToken(ch)
	if err != nil {
		return Result{}, err
	}
	ns, name, err := ParseSymbol(token)
	if err != nil {
		return Result{}, fr.errorf(InvalidSymbol, token, start+1, "invalid tag %q", token)
	}
	tag := form.NewSymbol(ns, name, fr.src.Span(start+1))
	r, err := fr.Read(NoSentinel)
	if err != nil {
		return Result{}, err
	}
	if r.Kind() == ResultEndOfInput {
		return Result{}, fr.errorf(UnexpectedEOF, "#"+token, start, "expected a form after tag #%s", token)
	}
	return FormResult(form.NewTagged(tag, r.Form(), fr.src.Span(start))), nil
}
