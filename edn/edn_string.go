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
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/google/ednio/edn/form"
)

var singleCharEscapes = map[rune]rune{
	't':  '\t',
	'r':  '\r',
	'n':  '\n',
	'\\': '\\',
	'"':  '"',
	'b':  '\b',
	'f':  '\f',
}

func isOctalDigit(r rune) bool { return '0' <= r && r <= '7' }

func isHexDigit(r rune) bool {
	return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// readString is the macro for '"'.
func (fr *FormReader) readString(_ rune) (form.Form, error) {
	start := fr.src.Offset() - 1
	value := strings.Builder{}
	for {
		ch, err := fr.src.Next()
		if err == io.EOF {
			return nil, fr.errorf(UnterminatedString, `"`+value.String(), start, "did not find end of string token '\"'")
		}
		if err != nil {
			return nil, err
		}
		switch ch {
		case '"':
			return form.NewString(value.String(), fr.src.Span(start)), nil
		case '\\':
			if err := fr.readStringEscape(&value, start); err != nil {
				return nil, err
			}
		default:
			value.WriteRune(ch)
		}
	}
}

// readStringEscape decodes the escape sequence following a backslash.
func (fr *FormReader) readStringEscape(value *strings.Builder, start int) error {
	escStart := fr.src.Offset() - 1
	ch, err := fr.src.Next()
	if err == io.EOF {
		return fr.errorf(UnterminatedString, `"`+value.String()+`\`, start, "did not find end of string token '\"'")
	}
	if err != nil {
		return err
	}
	if r, ok := singleCharEscapes[ch]; ok {
		value.WriteRune(r)
		return nil
	}
	switch {
	case ch == 'u':
		r, err := fr.readHexEscape(escStart)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			r = fr.combineSurrogate(r)
		}
		value.WriteRune(r)
		return nil
	case isDigit(ch):
		fr.src.PushBack(ch)
		r, err := fr.readOctalEscape(escStart)
		if err != nil {
			return err
		}
		value.WriteRune(r)
		return nil
	}
	return fr.errorf(InvalidEscape, `\`+string(ch), escStart, "invalid escape %q", `\`+string(ch))
}

// readHexEscape reads exactly four hex digits and returns the UTF-16 code
// unit they denote.
func (fr *FormReader) readHexEscape(escStart int) (rune, error) {
	digits := strings.Builder{}
	for i := 0; i < 4; i++ {
		ch, err := fr.src.Next()
		if err != nil && err != io.EOF {
			return 0, err
		}
		if err == io.EOF || !isHexDigit(ch) {
			if err == nil {
				fr.src.PushBack(ch)
			}
			return 0, fr.errorf(InvalidEscape, `\u`+digits.String(), escStart, "invalid unicode escape %q: expected 4 hex digits", `\u`+digits.String())
		}
		digits.WriteRune(ch)
	}
	v, err := strconv.ParseUint(digits.String(), 16, 16)
	if err != nil {
		return 0, err
	}
	return rune(v), nil
}

// readOctalEscape reads one to three octal digits and returns the code point
// they denote.
func (fr *FormReader) readOctalEscape(escStart int) (rune, error) {
	digits := strings.Builder{}
	for i := 0; i < 3; i++ {
		ch, err := fr.src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if !isOctalDigit(ch) {
			fr.src.PushBack(ch)
			break
		}
		digits.WriteRune(ch)
	}
	if digits.Len() == 0 {
		ch, _ := fr.src.Peek()
		return 0, fr.errorf(InvalidEscape, `\`+string(ch), escStart, "invalid octal escape %q", `\`+string(ch))
	}
	v, err := strconv.ParseUint(digits.String(), 8, 32)
	if err != nil {
		return 0, err
	}
	return rune(v), nil
}

// combineSurrogate joins a high surrogate with an immediately following
// `\uXXXX` low surrogate escape. Unpaired surrogates decode to U+FFFD.
func (fr *FormReader) combineSurrogate(high rune) rune {
	if high >= 0xdc00 {
		return utf8.RuneError
	}
	backslash, err := fr.src.Next()
	if err != nil {
		return utf8.RuneError
	}
	u, err := fr.src.Next()
	if err != nil {
		fr.src.PushBack(backslash)
		return utf8.RuneError
	}
	if backslash != '\\' || u != 'u' {
		fr.src.PushBack(u)
		fr.src.PushBack(backslash)
		return utf8.RuneError
	}
	// Consume the hex digits; on malformed input the next escape read fails.
	var hex []rune
	for i := 0; i < 4; i++ {
		ch, err := fr.src.Next()
		if err != nil {
			break
		}
		hex = append(hex, ch)
		if !isHexDigit(ch) {
			break
		}
	}
	v, err := strconv.ParseUint(string(hex), 16, 16)
	if err != nil || !utf16.IsSurrogate(rune(v)) || rune(v) < 0xdc00 {
		for i := len(hex) - 1; i >= 0; i-- {
			fr.src.PushBack(hex[i])
		}
		fr.src.PushBack(u)
		fr.src.PushBack(backslash)
		return utf8.RuneError
	}
	return utf16.DecodeRune(high, rune(v))
}

// readChar is the macro for '\'.
func (fr *FormReader) readChar(_ rune) (form.Form, error) {
	start := fr.src.Offset() - 1
	ch, err := fr.src.Next()
	if err == io.EOF {
		return nil, fr.errorf(UnexpectedEOF, `\`, start, "end of input in character literal")
	}
	if err != nil {
		return nil, err
	}
	if isWhitespace(ch) {
		fr.src.PushBack(ch)
		return nil, fr.errorf(InvalidCharacterLiteral, `\`, start, "backslash cannot be followed by whitespace")
	}
	token := string(ch)
	if !isDelimiter(ch) {
		if token, err = fr.ReadToken(ch); err != nil {
			return nil, err
		}
	}
	r, err := fr.decodeCharToken(token, start)
	if err != nil {
		return nil, err
	}
	return form.NewChar(r, fr.src.Span(start)), nil
}

func (fr *FormReader) decodeCharToken(token string, start int) (rune, error) {
	if utf8.RuneCountInString(token) == 1 {
		r, _ := utf8.DecodeRuneInString(token)
		return r, nil
	}
	if r, ok := form.CharNames[token]; ok {
		return r, nil
	}
	switch token[0] {
	case 'u':
		digits := token[1:]
		if len(digits) != 4 || strings.IndexFunc(digits, func(r rune) bool { return !isHexDigit(r) }) >= 0 {
			return 0, fr.errorf(InvalidEscape, `\`+token, start, "invalid unicode character %q: expected 4 hex digits", `\`+token)
		}
		v, _ := strconv.ParseUint(digits, 16, 16)
		if utf16.IsSurrogate(rune(v)) {
			return 0, fr.errorf(InvalidEscape, `\`+token, start, "invalid unicode character %q: surrogate code point", `\`+token)
		}
		return rune(v), nil
	case 'o':
		digits := token[1:]
		if len(digits) > 3 || strings.IndexFunc(digits, func(r rune) bool { return !isOctalDigit(r) }) >= 0 {
			return 0, fr.errorf(InvalidEscape, `\`+token, start, "invalid octal character %q: expected 1 to 3 octal digits", `\`+token)
		}
		v, _ := strconv.ParseUint(digits, 8, 32)
		return rune(v), nil
	}
	return 0, fr.errorf(InvalidCharacterLiteral, `\`+token, start, "invalid character literal %q", `\`+token)
}
