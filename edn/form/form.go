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

// Package form defines the values produced by the edn reader.
//
// Every element of an EDN document is a Form. The concrete types in this
// package (*Nil, *Bool, *Integer, *Float, *Ratio, *String, *Char, *Symbol,
// *Keyword, *List, *Vector, *Map, *Set and *Tagged) are immutable once
// constructed. Type switches are the expected way to inspect a Form:
//
//	switch f := f.(type) {
//	case *form.Keyword:
//		fmt.Println(f.Namespace(), f.Name())
//	case *form.Vector:
//		fmt.Println(f.Len())
//	}
//
// The String() method of every form returns EDN text that reads back as an
// equal form.
package form

import (
	"go/constant"
	"go/token"
	"math/big"
	"strings"

	"github.com/google/ednio/textpos"
)

// Form is a value that has a textual representation in an EDN document.
//
// SourcePosition returns the range of text the form was read from. Forms
// created programmatically have an invalid (zero) range.
type Form interface {
	SourcePosition() textpos.Range
	Value() interface{}
	String() string
}

// Number is implemented by the numeric forms *Integer, *Float and *Ratio.
type Number interface {
	Form

	// Number returns the number using go's constant package. Integers are
	// exact, ratios are exact rationals and floats with the M suffix hold the
	// exact decimal literal.
	Number() constant.Value
}

// Sequential is implemented by forms holding an ordered sequence of subforms
// (*List, *Vector and *Set).
type Sequential interface {
	Form

	// Len returns the number of subforms.
	Len() int

	// Nth returns the nth subform. It panics if n is out of range.
	Nth(n int) Form
}

// Subforms returns the subforms of f as a new slice.
func Subforms(f Sequential) []Form {
	out := make([]Form, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		out = append(out, f.Nth(i))
	}
	return out
}

// Nil is the EDN nil value.
type Nil struct {
	span textpos.Range
}

// NewNil returns a nil form.
func NewNil(span textpos.Range) *Nil { return &Nil{span} }

// SourcePosition returns the range of text the form was read from.
func (f *Nil) SourcePosition() textpos.Range { return f.span }

// Value returns nil.
func (f *Nil) Value() interface{} { return nil }

// Bool is true or false.
type Bool struct {
	val  bool
	span textpos.Range
}

// NewBool returns a boolean form.
func NewBool(val bool, span textpos.Range) *Bool { return &Bool{val, span} }

// SourcePosition returns the range of text the form was read from.
func (f *Bool) SourcePosition() textpos.Range { return f.span }

// Value returns the bool value.
func (f *Bool) Value() interface{} { return f.val }

// BoolValue returns the bool value.
func (f *Bool) BoolValue() bool { return f.val }

// Integer is an arbitrary precision integer.
type Integer struct {
	val  *big.Int
	big  bool
	span textpos.Range
}

// NewInteger returns an integer form. isBig records whether the literal
// carried the N suffix. The form takes ownership of val.
func NewInteger(val *big.Int, isBig bool, span textpos.Range) *Integer {
	return &Integer{val, isBig, span}
}

// MakeInt returns an integer form with no source position.
func MakeInt(v int64) *Integer {
	return NewInteger(big.NewInt(v), false, textpos.Range{})
}

// SourcePosition returns the range of text the form was read from.
func (f *Integer) SourcePosition() textpos.Range { return f.span }

// Value returns the integer as a *big.Int.
func (f *Integer) Value() interface{} { return f.BigInt() }

// BigInt returns a copy of the integer value.
func (f *Integer) BigInt() *big.Int { return new(big.Int).Set(f.val) }

// Int64 returns the value as an int64 and whether it fits.
func (f *Integer) Int64() (int64, bool) {
	if !f.val.IsInt64() {
		return 0, false
	}
	return f.val.Int64(), true
}

// IsBig reports whether the literal carried the N suffix.
func (f *Integer) IsBig() bool { return f.big }

// Number returns the integer as an exact constant.
func (f *Integer) Number() constant.Value { return constant.Make(f.BigInt()) }

// Float is a 64-bit floating point number.
//
// A literal with the M suffix additionally keeps its exact decimal text,
// available through Number() and Decimal().
type Float struct {
	val     float64
	decimal string
	span    textpos.Range
}

// NewFloat returns a float form.
func NewFloat(val float64, span textpos.Range) *Float {
	return &Float{val: val, span: span}
}

// NewExactFloat returns a float form for an M suffixed literal. decimal is the
// literal without sign normalization and without the M suffix.
func NewExactFloat(val float64, decimal string, span textpos.Range) *Float {
	return &Float{val, decimal, span}
}

// MakeFloat returns a float form with no source position.
func MakeFloat(v float64) *Float { return NewFloat(v, textpos.Range{}) }

// SourcePosition returns the range of text the form was read from.
func (f *Float) SourcePosition() textpos.Range { return f.span }

// Value returns the float64 value.
func (f *Float) Value() interface{} { return f.val }

// Float64 returns the float64 value.
func (f *Float) Float64() float64 { return f.val }

// IsExact reports whether the literal carried the M suffix.
func (f *Float) IsExact() bool { return f.decimal != "" }

// Decimal returns the exact decimal literal, or "" if the literal was not M
// suffixed.
func (f *Float) Decimal() string { return f.decimal }

// Number returns the exact decimal value for M suffixed literals and the
// float64 value otherwise.
func (f *Float) Number() constant.Value {
	if f.decimal != "" {
		lit, neg := strings.TrimPrefix(f.decimal, "+"), false
		if strings.HasPrefix(lit, "-") {
			lit, neg = lit[1:], true
		}
		if v := constant.MakeFromLiteral(lit, token.FLOAT, 0); v.Kind() != constant.Unknown {
			if neg {
				v = constant.UnaryOp(token.SUB, v, 0)
			}
			return v
		}
	}
	return constant.MakeFloat64(f.val)
}

// Ratio is an exact rational number kept as the numerator and denominator
// that were written. The sign is carried by the numerator and the
// denominator is positive.
type Ratio struct {
	num, denom *big.Int
	span       textpos.Range
}

// NewRatio returns a ratio form. It panics if denom is not positive. The form
// takes ownership of num and denom.
func NewRatio(num, denom *big.Int, span textpos.Range) *Ratio {
	if denom.Sign() <= 0 {
		panic("form.NewRatio: denominator must be positive")
	}
	return &Ratio{num, denom, span}
}

// MakeRatio returns a ratio form with no source position.
func MakeRatio(num, denom int64) *Ratio {
	return NewRatio(big.NewInt(num), big.NewInt(denom), textpos.Range{})
}

// SourcePosition returns the range of text the form was read from.
func (f *Ratio) SourcePosition() textpos.Range { return f.span }

// Value returns the ratio as a *big.Rat.
func (f *Ratio) Value() interface{} { return f.Rat() }

// Numerator returns a copy of the numerator as written.
func (f *Ratio) Numerator() *big.Int { return new(big.Int).Set(f.num) }

// Denominator returns a copy of the denominator as written.
func (f *Ratio) Denominator() *big.Int { return new(big.Int).Set(f.denom) }

// Rat returns the reduced rational value.
func (f *Ratio) Rat() *big.Rat { return new(big.Rat).SetFrac(f.num, f.denom) }

// Number returns the ratio as an exact constant.
func (f *Ratio) Number() constant.Value { return constant.Make(f.Rat()) }

// String is a string literal.
type String struct {
	val  string
	span textpos.Range
}

// NewString returns a string form holding the decoded value.
func NewString(val string, span textpos.Range) *String { return &String{val, span} }

// SourcePosition returns the range of text the form was read from.
func (f *String) SourcePosition() textpos.Range { return f.span }

// Value returns the decoded string.
func (f *String) Value() interface{} { return f.val }

// StringValue returns the decoded string.
func (f *String) StringValue() string { return f.val }

// Char is a character literal.
type Char struct {
	val  rune
	span textpos.Range
}

// NewChar returns a character form.
func NewChar(val rune, span textpos.Range) *Char { return &Char{val, span} }

// SourcePosition returns the range of text the form was read from.
func (f *Char) SourcePosition() textpos.Range { return f.span }

// Value returns the rune.
func (f *Char) Value() interface{} { return f.val }

// Rune returns the rune.
func (f *Char) Rune() rune { return f.val }

// Pair is a key and value of a map form.
type Pair struct {
	Key, Val Form
}

// Tagged is a tagged element such as `#inst "1985-04-12T23:20:50.52Z"`.
//
// The reader only produces Tagged forms when tagged literal support is
// enabled on its macro table.
type Tagged struct {
	tag   *Symbol
	value Form
	span  textpos.Range
}

// NewTagged returns a tagged element form.
func NewTagged(tag *Symbol, value Form, span textpos.Range) *Tagged {
	return &Tagged{tag, value, span}
}

// SourcePosition returns the range of text the form was read from.
func (f *Tagged) SourcePosition() textpos.Range { return f.span }

// Value returns the value of the tagged form.
func (f *Tagged) Value() interface{} { return f.value.Value() }

// Tag returns the tag symbol.
func (f *Tagged) Tag() *Symbol { return f.tag }

// Element returns the tagged form.
func (f *Tagged) Element() Form { return f.value }
