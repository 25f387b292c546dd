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
	"io"
	"strings"

	"github.com/google/ednio/edn/form"
)

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',':
		return true
	}
	return false
}

// isDelimiter reports whether r ends a token.
func isDelimiter(r rune) bool {
	return strings.ContainsRune("\";@^`()[]{}\\", r)
}

func isClosingDelimiter(r rune) bool {
	return r == ')' || r == ']' || r == '}'
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isNumberStart(ch, lookahead rune) bool {
	if isDigit(ch) {
		return true
	}
	return (ch == '+' || ch == '-') && isDigit(lookahead)
}

func (fr *FormReader) errorf(kind ErrorKind, token string, start int, format string, arg ...interface{}) *ReadError {
	return &ReadError{
		Kind:     kind,
		Token:    token,
		FileName: fr.src.Name(),
		Span:     fr.src.Span(start),
		msg:      fmt.Sprintf(format, arg...),
	}
}

// ReadToken accumulates a token starting with the already consumed character
// first. The token ends before whitespace, a delimiter or the end of input;
// the terminating character is left unconsumed. If first is itself a
// delimiter or whitespace it is pushed back and the token is empty.
func (fr *FormReader) ReadToken(first rune) (string, error) {
	token := strings.Builder{}
	ch := first
	for {
		if isWhitespace(ch) || isDelimiter(ch) {
			fr.src.PushBack(ch)
			return token.String(), nil
		}
		token.WriteRune(ch)
		var err error
		ch, err = fr.src.Next()
		if err == io.EOF {
			return token.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

var errInvalidSymbol = errors.New("invalid symbol")

// ParseSymbol splits a symbol token into its namespace and name. The namespace
// is "" for unqualified symbols. A bare "/" is the name "/".
//
// The token is rejected if it starts with "::" or ends with ":". If it
// contains "/", the part before the first "/" is the namespace; it must be
// non-empty and not end with ":". The name must be non-empty, must not start
// with a digit and must not contain another "/" unless it is exactly "/".
func ParseSymbol(token string) (namespace, name string, err error) {
	if token == "" || strings.HasPrefix(token, "::") || strings.HasSuffix(token, ":") {
		return "", "", errInvalidSymbol
	}
	if token == "/" || !strings.Contains(token, "/") {
		return "", token, nil
	}
	i := strings.IndexByte(token, '/')
	ns, sym := token[:i], token[i+1:]
	if ns == "" || strings.HasSuffix(ns, ":") {
		return "", "", errInvalidSymbol
	}
	if sym == "" || isDigit(rune(sym[0])) {
		return "", "", errInvalidSymbol
	}
	if sym != "/" && strings.Contains(sym, "/") {
		return "", "", errInvalidSymbol
	}
	return ns, sym, nil
}

// readSymbol reads a symbol, or nil/true/false, starting with the consumed
// character first.
func (fr *FormReader) readSymbol(first rune) (form.Form, error) {
	start := fr.src.Offset() - 1
	if isDelimiter(first) {
		return nil, fr.errorf(InvalidSymbol, string(first), start, "invalid symbol: unexpected %q", first)
	}
	token, err := fr.ReadToken(first)
	if err != nil {
		return nil, err
	}
	span := fr.src.Span(start)
	switch token {
	case "nil":
		return form.NewNil(span), nil
	case "true":
		return form.NewBool(true, span), nil
	case "false":
		return form.NewBool(false, span), nil
	}
	ns, name, err := ParseSymbol(token)
	if err != nil {
		return nil, fr.errorf(InvalidSymbol, token, start, "invalid symbol: %q", token)
	}
	return form.NewSymbol(ns, name, span), nil
}

// readKeyword is the macro for ':'.
func (fr *FormReader) readKeyword(_ rune) (form.Form, error) {
	start := fr.src.Offset() - 1
	ch, err := fr.src.Next()
	if err == io.EOF {
		return nil, fr.errorf(InvalidKeyword, ":", start, "invalid keyword: single colon at end of input")
	}
	if err != nil {
		return nil, err
	}
	if isWhitespace(ch) {
		fr.src.PushBack(ch)
		return nil, fr.errorf(InvalidKeyword, ":", start, "invalid keyword: single colon not allowed")
	}
	token, err := fr.ReadToken(ch)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fr.errorf(InvalidKeyword, ":", start, "invalid keyword: single colon not allowed")
	}
	if strings.HasPrefix(token, ":") {
		return nil, fr.errorf(InvalidKeyword, ":"+token, start, "invalid keyword: namespace alias %q not supported", ":"+token)
	}
	ns, name, err := ParseSymbol(token)
	if err != nil {
		return nil, fr.errorf(InvalidKeyword, ":"+token, start, "invalid keyword: %q", ":"+token)
	}
	return form.NewKeyword(ns, name, fr.src.Span(start)), nil
}
