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

package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// String returns "nil".
func (f *Nil) String() string { return "nil" }

// String returns "true" or "false".
func (f *Bool) String() string { return strconv.FormatBool(f.val) }

// String returns the decimal representation, with an N suffix if the literal
// had one.
func (f *Integer) String() string {
	if f.big {
		return f.val.String() + "N"
	}
	return f.val.String()
}

// String returns the float as EDN text. M suffixed literals print their exact
// decimal text.
func (f *Float) String() string {
	if f.decimal != "" {
		return f.decimal + "M"
	}
	return FormatFloat(f.val)
}

// String returns "numerator/denominator" as written.
func (f *Ratio) String() string { return f.num.String() + "/" + f.denom.String() }

// String returns the quoted and escaped string literal.
func (f *String) String() string { return QuoteString(f.val) }

// String returns the character literal, such as `\a` or `\newline`.
func (f *Char) String() string { return QuoteChar(f.val) }

// String returns "(a b c)".
func (f *List) String() string { return joinForms("(", f.elems, ")") }

// String returns "[a b c]".
func (f *Vector) String() string { return joinForms("[", f.elems, "]") }

// String returns "#{a b c}".
func (f *Set) String() string { return joinForms("#{", f.elems, "}") }

// String returns "{k1 v1, k2 v2}".
func (f *Map) String() string {
	b := strings.Builder{}
	b.WriteString("{")
	for i, p := range f.pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Key.String())
		b.WriteString(" ")
		b.WriteString(p.Val.String())
	}
	b.WriteString("}")
	return b.String()
}

// String returns "#tag value".
func (f *Tagged) String() string {
	return fmt.Sprintf("#%s %s", f.tag, f.value)
}

func joinForms(open string, forms []Form, close string) string {
	b := strings.Builder{}
	b.WriteString(open)
	for i, f := range forms {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(f.String())
	}
	b.WriteString(close)
	return b.String()
}

// FormatFloat returns v as EDN text. The result always reads back as a float:
// it contains a decimal point or exponent, or is one of ##Inf, ##-Inf and
// ##NaN.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "##Inf"
	case math.IsInf(v, -1):
		return "##-Inf"
	case math.IsNaN(v):
		return "##NaN"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

var stringEscapes = map[rune]string{
	'"':  `\"`,
	'\\': `\\`,
	'\n': `\n`,
	'\t': `\t`,
	'\r': `\r`,
	'\b': `\b`,
	'\f': `\f`,
}

// QuoteString returns s as a double quoted EDN string literal.
func QuoteString(s string) string {
	b := strings.Builder{}
	b.WriteByte('"')
	for _, r := range s {
		if esc, ok := stringEscapes[r]; ok {
			b.WriteString(esc)
			continue
		}
		if r < 0x20 || r == 0x7f {
			fmt.Fprintf(&b, `\u%04x`, r)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// CharNames maps the named character literals to their runes.
var CharNames = map[string]rune{
	"newline":   '\n',
	"space":     ' ',
	"tab":       '\t',
	"backspace": '\b',
	"formfeed":  '\f',
	"return":    '\r',
}

// QuoteChar returns r as an EDN character literal. Comma is whitespace in EDN
// and is written as \u002c.
func QuoteChar(r rune) string {
	for name, named := range CharNames {
		if named == r {
			return `\` + name
		}
	}
	if r == ',' || (!unicode.IsPrint(r) && r <= 0xffff) {
		return fmt.Sprintf(`\u%04x`, r)
	}
	return `\` + string(r)
}
