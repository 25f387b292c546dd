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
	"errors"
	"fmt"
	"strings"

	"github.com/google/ednio/textpos"
	wordwrap "github.com/mitchellh/go-wordwrap"
)

// ErrorKind classifies a ReadError. ErrorKind implements error so callers can
// test for a kind with errors.Is:
//
//	if errors.Is(err, edn.OddMapEntries) { ... }
type ErrorKind int

const (
	// InvalidSymbol is a malformed or ambiguous namespace/name token.
	InvalidSymbol ErrorKind = iota + 1
	// InvalidKeyword is a malformed keyword token, including `::alias` syntax.
	InvalidKeyword
	// UnterminatedString means the input ended before the closing quote.
	UnterminatedString
	// UnterminatedCollection means the input ended, or a different closing
	// delimiter was found, before a collection's closing delimiter.
	UnterminatedCollection
	// InvalidEscape is a malformed backslash escape or unicode/octal digit run.
	InvalidEscape
	// InvalidCharacterLiteral is an unrecognized `\x` character literal.
	InvalidCharacterLiteral
	// InvalidNumber is a token that starts like a number but is not one.
	InvalidNumber
	// OddMapEntries is a map literal with an odd number of forms.
	OddMapEntries
	// InvalidDispatch is `#` followed by an unregistered character.
	InvalidDispatch
	// UnmatchedDelimiter is a closing delimiter outside of any collection.
	UnmatchedDelimiter
	// UnexpectedEOF means the input ended where a form or character was
	// required, such as after `#_` or a lone `\`.
	UnexpectedEOF
	// NestingTooDeep means collections were nested beyond the configured
	// maximum depth.
	NestingTooDeep
)

var errorKindNames = map[ErrorKind]string{
	InvalidSymbol:           "invalid symbol",
	InvalidKeyword:          "invalid keyword",
	UnterminatedString:      "unterminated string",
	UnterminatedCollection:  "unterminated collection",
	InvalidEscape:           "invalid escape",
	InvalidCharacterLiteral: "invalid character literal",
	InvalidNumber:           "invalid number literal",
	OddMapEntries:           "odd number of map entries",
	InvalidDispatch:         "invalid dispatch",
	UnmatchedDelimiter:      "unmatched delimiter",
	UnexpectedEOF:           "unexpected end of input",
	NestingTooDeep:          "nesting too deep",
}

// Error returns a short description of the kind.
func (k ErrorKind) Error() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("edn error kind %d", int(k))
}

// String returns the same value as Error.
func (k ErrorKind) String() string { return k.Error() }

// ReadError is returned by the reader for malformed input. Every ReadError
// aborts the read that produced it.
type ReadError struct {
	// Kind classifies the error.
	Kind ErrorKind
	// Token is the offending raw token or character.
	Token string
	// FileName is the name of the source.
	FileName string
	// Span is the range of text the error refers to.
	Span textpos.Range

	msg   string
	cause error
}

// Error returns "file:line:col: message".
func (e *ReadError) Error() string {
	prefix := e.Span.Start().String()
	if e.FileName != "" {
		prefix = e.FileName + ":" + prefix
	}
	return fmt.Sprintf("%s: %s", prefix, e.msg)
}

// Unwrap returns the kind and, if present, the underlying cause.
func (e *ReadError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// KindOf returns the ErrorKind of err, or 0 if err is not a *ReadError.
func KindOf(err error) ErrorKind {
	var re *ReadError
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

// Diagnostic renders err for display to a user: the message wrapped at width
// columns followed by the offending line of contents and a caret under the
// error position. Errors that are not *ReadError values are only wrapped.
func Diagnostic(err error, contents string, width int) string {
	if width <= 0 {
		width = 80
	}
	var re *ReadError
	if !errors.As(err, &re) {
		return wordwrap.WrapString(err.Error(), uint(width))
	}
	out := strings.Builder{}
	out.WriteString(wordwrap.WrapString(re.Error(), uint(width)))
	start := re.Span.Start()
	if !start.IsValid() {
		return out.String()
	}
	lines := strings.Split(contents, "\n")
	if start.Line().Offset() >= len(lines) {
		return out.String()
	}
	text := strings.TrimRight(lines[start.Line().Offset()], "\r")
	out.WriteString("\n    ")
	out.WriteString(text)
	out.WriteString("\n    ")
	caretCol := start.Column().Offset()
	if n := len([]rune(text)); caretCol > n {
		caretCol = n
	}
	out.WriteString(strings.Repeat(" ", caretCol))
	out.WriteString("^")
	return out.String()
}
