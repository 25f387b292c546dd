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
	"math/big"
	"regexp"
	"strconv"

	"github.com/google/ednio/edn/form"
	"github.com/google/ednio/textpos"
)

var (
	// Submatches: sign, zero, decimal, hex, octal, radix, radix digits,
	// big marker. A leading zero followed by decimal digits matches the last
	// alternative and is rejected.
	intPattern   = regexp.MustCompile(`^([-+]?)(?:(0)|([1-9][0-9]*)|0[xX]([0-9A-Fa-f]+)|0([0-7]+)|([1-9][0-9]?)[rR]([0-9A-Za-z]+)|0[0-9]+)(N)?$`)
	floatPattern = regexp.MustCompile(`^([-+]?[0-9]+(?:\.[0-9]*)?(?:[eE][-+]?[0-9]+)?)(M)?$`)
	ratioPattern = regexp.MustCompile(`^([-+]?[0-9]+)/([0-9]+)$`)
)

// readNumber reads a number literal starting with the consumed character
// first.
func (fr *FormReader) readNumber(first rune) (form.Form, error) {
	start := fr.src.Offset() - 1
	token, err := fr.ReadToken(first)
	if err != nil {
		return nil, err
	}
	f, err := ParseNumber(token, fr.src.Span(start))
	if err != nil {
		re := fr.errorf(InvalidNumber, token, start, "%v", err)
		if !errors.Is(err, InvalidNumber) {
			re.cause = err
		}
		return nil, re
	}
	return f, nil
}

// ParseNumber converts a number token to an *form.Integer, *form.Float or
// *form.Ratio. The integer, float and ratio grammars are tried in that order.
// The returned error wraps InvalidNumber if the token matches none of them.
func ParseNumber(token string, span textpos.Range) (form.Number, error) {
	if m := intPattern.FindStringSubmatch(token); m != nil {
		return parseInt(token, m, span)
	}
	if m := floatPattern.FindStringSubmatch(token); m != nil {
		return parseFloat(m, span)
	}
	if m := ratioPattern.FindStringSubmatch(token); m != nil {
		return parseRatio(token, m, span)
	}
	return nil, fmt.Errorf("%w %q", InvalidNumber, token)
}

func parseInt(token string, m []string, span textpos.Range) (form.Number, error) {
	negate, isBig := m[1] == "-", m[8] == "N"
	var digits string
	base := 10
	switch {
	case m[2] != "":
		return form.NewInteger(new(big.Int), isBig, span), nil
	case m[3] != "":
		digits = m[3]
	case m[4] != "":
		digits, base = m[4], 16
	case m[5] != "":
		digits, base = m[5], 8
	case m[6] != "":
		radix, err := strconv.Atoi(m[6])
		if err != nil {
			return nil, err
		}
		if radix < 2 || radix > 36 {
			return nil, fmt.Errorf("%w: radix %d out of range [2, 36] in %q", InvalidNumber, radix, token)
		}
		digits, base = m[7], radix
	default:
		return nil, fmt.Errorf("%w: leading zero in decimal literal %q", InvalidNumber, token)
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a base %d number", InvalidNumber, digits, base)
	}
	if negate {
		n.Neg(n)
	}
	return form.NewInteger(n, isBig, span), nil
}

func parseFloat(m []string, span textpos.Range) (form.Number, error) {
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, err
	}
	if m[2] == "M" {
		return form.NewExactFloat(v, m[1], span), nil
	}
	return form.NewFloat(v, span), nil
}

func parseRatio(token string, m []string, span textpos.Range) (form.Number, error) {
	num, ok := new(big.Int).SetString(m[1], 10)
	if !ok {
		return nil, fmt.Errorf("%w: bad numerator in %q", InvalidNumber, token)
	}
	denom, ok := new(big.Int).SetString(m[2], 10)
	if !ok || denom.Sign() == 0 {
		return nil, fmt.Errorf("%w: denominator of %q must be positive", InvalidNumber, token)
	}
	return form.NewRatio(num, denom, span), nil
}
