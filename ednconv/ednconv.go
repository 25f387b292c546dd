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

// Package ednconv converts EDN forms to plain Go values, JSON and YAML.
//
// Maps keep the order of their pairs. Keywords and symbols become strings
// without the leading colon; map keys that are keywords or symbols may have
// their names rewritten with a KeyCase. Conversions that lose information,
// such as a ratio that has no exact float64 representation, are logged as
// warnings.
package ednconv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/golang/glog"
	"github.com/google/ednio/edn/form"
	"github.com/stoewer/go-strcase"
)

// KeyCase selects how keyword and symbol map keys are rewritten.
type KeyCase int

const (
	// KeyCaseNone leaves keys as written.
	KeyCaseNone KeyCase = iota
	// KeyCaseSnake converts :first-name to "first_name".
	KeyCaseSnake
	// KeyCaseCamel converts :first-name to "firstName".
	KeyCaseCamel
	// KeyCaseUpperCamel converts :first-name to "FirstName".
	KeyCaseUpperCamel
)

var keyCaseNames = []string{"none", "snake", "camel", "upper_camel"}

// ParseKeyCase returns the KeyCase with the given name: "none", "snake",
// "camel" or "upper_camel".
func ParseKeyCase(name string) (KeyCase, error) {
	for i, n := range keyCaseNames {
		if n == name {
			return KeyCase(i), nil
		}
	}
	return KeyCaseNone, fmt.Errorf("unknown key case %q, want one of %s", name, strings.Join(keyCaseNames, ", "))
}

func (k KeyCase) String() string {
	if k < 0 || int(k) >= len(keyCaseNames) {
		return fmt.Sprintf("KeyCase(%d)", int(k))
	}
	return keyCaseNames[k]
}

func (k KeyCase) apply(name string) string {
	switch k {
	case KeyCaseSnake:
		return strcase.SnakeCase(name)
	case KeyCaseCamel:
		return strcase.LowerCamelCase(name)
	case KeyCaseUpperCamel:
		return strcase.UpperCamelCase(name)
	}
	return name
}

// Option configures a conversion.
type Option interface {
	apply(*converter)
}

type simpleOption func(c *converter)

func (opt simpleOption) apply(c *converter) {
	opt(c)
}

// WithKeyCase returns an Option that rewrites keyword and symbol map keys.
func WithKeyCase(k KeyCase) Option {
	return simpleOption(func(c *converter) {
		c.keyCase = k
	})
}

// WithIndent returns an Option that makes MarshalJSON indent nested values
// with the given string. It has no effect on other conversions.
func WithIndent(indent string) Option {
	return simpleOption(func(c *converter) {
		c.indent = indent
	})
}

type converter struct {
	keyCase KeyCase
	indent  string
	// forJSON restricts values to those encoding/json can represent.
	forJSON bool
}

func newConverter(opts []Option) *converter {
	c := &converter{}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}

// ToGo returns f as a Go value:
//
//	nil                      nil
//	true, false              bool
//	integers                 int64, or *big.Int if out of range
//	floats                   float64
//	M suffixed floats        json.Number holding the decimal text
//	ratios                   *big.Rat
//	strings, characters      string
//	keywords, symbols        string (qualified name, no colon)
//	lists, vectors, sets     []interface{}
//	maps                     *OrderedMap
//	#tag value               *OrderedMap with the single key "#tag"
func ToGo(f form.Form, opts ...Option) (interface{}, error) {
	return newConverter(opts).toGo(f)
}

// MarshalJSON returns the JSON encoding of f. Non-finite floats are written
// as the strings "##Inf", "##-Inf" and "##NaN", and ratios as the nearest
// float64.
func MarshalJSON(f form.Form, opts ...Option) ([]byte, error) {
	c := newConverter(opts)
	c.forJSON = true
	v, err := c.toGo(f)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", c.indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("error encoding form at %s: %w", f.SourcePosition(), err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (c *converter) toGo(f form.Form) (interface{}, error) {
	switch f := f.(type) {
	case *form.Nil:
		return nil, nil
	case *form.Bool:
		return f.BoolValue(), nil
	case *form.Integer:
		if v, ok := f.Int64(); ok {
			return v, nil
		}
		return f.BigInt(), nil
	case *form.Float:
		if f.IsExact() {
			return json.Number(normalizeDecimal(f.Decimal())), nil
		}
		v := f.Float64()
		if c.forJSON && (math.IsInf(v, 0) || math.IsNaN(v)) {
			glog.Warningf("%s: writing %s as a JSON string", f.SourcePosition(), f)
			return f.String(), nil
		}
		return v, nil
	case *form.Ratio:
		if !c.forJSON {
			return f.Rat(), nil
		}
		return ratioFloat(f), nil
	case *form.String:
		return f.StringValue(), nil
	case *form.Char:
		return string(f.Rune()), nil
	case *form.Symbol:
		return f.QualifiedName(), nil
	case *form.Keyword:
		return f.QualifiedName(), nil
	case *form.Map:
		m := NewOrderedMap()
		for i := 0; i < f.Len(); i++ {
			p := f.Pair(i)
			v, err := c.toGo(p.Val)
			if err != nil {
				return nil, err
			}
			c.set(m, c.key(p.Key), v, p.Key)
		}
		return m, nil
	case *form.Tagged:
		v, err := c.toGo(f.Element())
		if err != nil {
			return nil, err
		}
		m := NewOrderedMap()
		m.Set("#"+f.Tag().QualifiedName(), v)
		return m, nil
	case form.Sequential:
		out := make([]interface{}, 0, f.Len())
		for i := 0; i < f.Len(); i++ {
			v, err := c.toGo(f.Nth(i))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot convert form of type %T at %s", f, f.SourcePosition())
}

func (c *converter) set(m *OrderedMap, key string, v interface{}, keyForm form.Form) {
	if m.Set(key, v) {
		warnDuplicate(key, keyForm)
	}
}

func warnDuplicate(key string, keyForm form.Form) {
	glog.Warningf("%s: duplicate map key %q; keeping the last value", keyForm.SourcePosition(), key)
}

// key returns the string used for a map key. Keywords and symbols have their
// name rewritten by the key case; other keys use their EDN text.
func (c *converter) key(f form.Form) string {
	switch f := f.(type) {
	case *form.Keyword:
		return qualify(f.Namespace(), c.keyCase.apply(f.Name()))
	case *form.Symbol:
		return qualify(f.Namespace(), c.keyCase.apply(f.Name()))
	case *form.String:
		return f.StringValue()
	}
	return f.String()
}

func qualify(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "/" + name
}

func ratioFloat(f *form.Ratio) float64 {
	v, exact := f.Rat().Float64()
	if !exact {
		glog.Warningf("%s: ratio %s rounded to %v", f.SourcePosition(), f, v)
	}
	return v
}

// normalizeDecimal rewrites the text of an M suffixed literal, which may be
// written like "+01." or "2.5e1", as a valid JSON number.
func normalizeDecimal(s string) string {
	s = strings.TrimPrefix(s, "+")
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	mantissa, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exp = s[:i], s[i:]
	}
	intPart, frac := mantissa, ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		intPart, frac = mantissa[:i], mantissa[i+1:]
	}
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	out := sign + intPart
	if frac != "" {
		out += "." + frac
	}
	return out + exp
}

// OrderedMap is a string keyed map that remembers insertion order. It
// marshals to a JSON object with keys in that order.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

// NewOrderedMap returns an empty map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]interface{})}
}

// Set stores v under key and reports whether key was already present. A
// replaced key keeps its original position.
func (m *OrderedMap) Set(key string, v interface{}) bool {
	_, replaced := m.values[key]
	if !replaced {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return replaced
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *OrderedMap) Len() int { return len(m.keys) }

// MarshalJSON implements json.Marshaler.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshalNoEscape(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ json.Marshaler = (*OrderedMap)(nil)

// marshalNoEscape is json.Marshal without HTML escaping, matching the
// top-level encoder used by MarshalJSON.
func marshalNoEscape(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
