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

// Package edn reads EDN (extensible data notation) text in a manner similar
// to the Clojure reader.
//
// The elements of a document are called "forms" and are represented with the
// types of the "form" subpackage: nil, booleans, arbitrary precision
// integers, floats, exact ratios, strings, characters, namespaced symbols and
// keywords, lists, vectors, maps and sets.
//
// Reading is driven by a MacroTable that maps a leading character to a reader
// function. The default table handles strings, characters, keywords, the
// collection delimiters, comments and the `#` dispatch character; callers may
// register additional syntax on a copy of the table.
//
// The reader recurses once per level of collection nesting. Callers reading
// untrusted input should bound the nesting depth with WithMaxDepth.
package edn

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/google/ednio/edn/form"
)

// NoSentinel is passed to Read when no closing delimiter is expected.
const NoSentinel rune = -1

// ResultKind distinguishes the outcomes of Read and of macro functions.
type ResultKind int

const (
	// ResultForm means a form was produced.
	ResultForm ResultKind = iota
	// ResultNoOp means input was consumed without producing a form, as
	// with a comment. Read never returns it; it reads on instead.
	ResultNoOp
	// ResultEndOfInput means the input was exhausted before a form started.
	ResultEndOfInput
	// ResultSentinelReached means the sentinel character was consumed.
	ResultSentinelReached
)

// Result is the outcome of Read or of a MacroFunc.
type Result struct {
	kind ResultKind
	form form.Form
}

// FormResult returns a Result carrying f.
func FormResult(f form.Form) Result { return Result{ResultForm, f} }

// NoOpResult returns the Result of a macro that consumed input without
// producing a form.
func NoOpResult() Result { return Result{kind: ResultNoOp} }

// Kind returns the kind of result.
func (r Result) Kind() ResultKind { return r.kind }

// Form returns the form produced, or nil if Kind() is not ResultForm.
func (r Result) Form() form.Form { return r.form }

// FormReader reads a stream of EDN forms.
type FormReader struct {
	src      *Source
	macros   *MacroTable
	maxDepth int
	depth    int
}

// Option is used to configure a FormReader.
type Option interface {
	apply(*FormReader)
}

type simpleOption func(fr *FormReader)

func (opt simpleOption) apply(fr *FormReader) {
	opt(fr)
}

// WithMacroTable returns an Option that makes the reader use t instead of
// DefaultMacroTable(). The reader does not modify t; t must not be modified
// while the reader is in use.
func WithMacroTable(t *MacroTable) Option {
	return simpleOption(func(fr *FormReader) {
		fr.macros = t
	})
}

// WithMaxDepth returns an Option that limits collection nesting to n levels.
// Deeper input fails with NestingTooDeep. n <= 0 means no limit, which is the
// default.
func WithMaxDepth(n int) Option {
	return simpleOption(func(fr *FormReader) {
		fr.maxDepth = n
	})
}

// NewFileReader returns an object for reading forms from a source file, which
// is provided as a string.
//
// The fileName value is used to print error messages and will not be accessed
// by the reader, so it does not need to be a real file at all.
func NewFileReader(fileName, contents string, opts ...Option) *FormReader {
	return NewSourceReader(NewStringSource(fileName, contents), opts...)
}

// NewReader returns a reader for forms read incrementally from r.
func NewReader(fileName string, r io.Reader, opts ...Option) *FormReader {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return NewSourceReader(NewSource(fileName, rr), opts...)
}

// NewSourceReader returns a reader for forms in src.
func NewSourceReader(src *Source, opts ...Option) *FormReader {
	fr := &FormReader{src: src}
	for _, opt := range opts {
		opt.apply(fr)
	}
	if fr.macros == nil {
		fr.macros = defaultTable
	}
	return fr
}

// ReadString returns the first form in s. It returns io.EOF if s contains no
// forms.
func ReadString(s string, opts ...Option) (form.Form, error) {
	return NewFileReader("", s, opts...).ReadForm()
}

// ReadForm reads the next form in the input stream.
//
// If the end of the input is reached before a form starts, the error is
// io.EOF.
func (fr *FormReader) ReadForm() (form.Form, error) {
	r, err := fr.Read(NoSentinel)
	if err != nil {
		return nil, err
	}
	if r.Kind() == ResultEndOfInput {
		return nil, io.EOF
	}
	return r.Form(), nil
}

// ReadAll reads forms until the end of the input.
func (fr *FormReader) ReadAll() ([]form.Form, error) {
	var forms []form.Form
	for {
		f, err := fr.ReadForm()
		if err == io.EOF {
			return forms, nil
		}
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
}

// Read reads the next form. Whitespace (including commas) and forms that
// produce nothing, such as comments, are skipped.
//
// If sentinel is not NoSentinel and the next non-whitespace character equals
// sentinel, the character is consumed and the result has kind
// ResultSentinelReached. At the end of input the result has kind
// ResultEndOfInput.
func (fr *FormReader) Read(sentinel rune) (Result, error) {
	for {
		ch, err := fr.src.Next()
		if err == io.EOF {
			return Result{kind: ResultEndOfInput}, nil
		}
		if err != nil {
			return Result{}, err
		}
		if isWhitespace(ch) {
			continue
		}
		if sentinel != NoSentinel && ch == sentinel {
			return Result{kind: ResultSentinelReached}, nil
		}

		lookahead, err := fr.src.Peek()
		if err == io.EOF {
			lookahead = NoSentinel
		} else if err != nil {
			return Result{}, err
		}

		if isNumberStart(ch, lookahead) {
			f, err := fr.readNumber(ch)
			if err != nil {
				return Result{}, err
			}
			return FormResult(f), nil
		}
		if fn := fr.macros.Macro(ch); fn != nil {
			result, err := fn(fr, ch)
			if err != nil {
				return Result{}, err
			}
			if result.Kind() == ResultNoOp {
				continue
			}
			return result, nil
		}
		if isClosingDelimiter(ch) {
			return Result{}, fr.unexpectedCloser(ch, sentinel)
		}
		f, err := fr.readSymbol(ch)
		if err != nil {
			return Result{}, err
		}
		return FormResult(f), nil
	}
}

func (fr *FormReader) unexpectedCloser(ch, sentinel rune) error {
	start := fr.src.Offset() - 1
	if sentinel == NoSentinel {
		return fr.errorf(UnmatchedDelimiter, string(ch), start, "unmatched delimiter %q", ch)
	}
	return fr.errorf(UnterminatedCollection, string(ch), start, "expected %q to close collection, got %q", sentinel, ch)
}

// Source returns the character source of the reader. Macro functions use it
// to consume the text of their syntax.
func (fr *FormReader) Source() *Source { return fr.src }

// Next consumes the next character; see Source.Next.
func (fr *FormReader) Next() (rune, error) { return fr.src.Next() }

// PushBack un-consumes a character; see Source.PushBack.
func (fr *FormReader) PushBack(r rune) { fr.src.PushBack(r) }

// Errorf returns a *ReadError of the given kind spanning from the character
// at offset start to the current position.
func (fr *FormReader) Errorf(kind ErrorKind, token string, start int, format string, arg ...interface{}) *ReadError {
	return fr.errorf(kind, token, start, format, arg...)
}

// ReadDelimited reads forms until the close character. It is called after the
// opener text has been consumed; the opener is used for error reporting and
// to locate the start of the collection.
func (fr *FormReader) ReadDelimited(opener string, close rune) ([]form.Form, error) {
	return fr.readDelimited(opener, close, fr.src.Offset()-utf8.RuneCountInString(opener))
}
