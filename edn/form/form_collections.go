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

import "github.com/google/ednio/textpos"

// List is a list expression. It is the result of reading text like
// `(abc 123)`.
type List struct {
	elems []Form
	span  textpos.Range
}

// NewList returns a list form. The form takes ownership of elems.
func NewList(elems []Form, span textpos.Range) *List { return &List{elems, span} }

// SourcePosition returns the range of text the form was read from.
func (f *List) SourcePosition() textpos.Range { return f.span }

// Value returns the subforms of the list.
func (f *List) Value() interface{} { return Subforms(f) }

// Len returns the number of subforms.
func (f *List) Len() int { return len(f.elems) }

// Nth returns the nth subform.
func (f *List) Nth(n int) Form { return f.elems[n] }

// Vector is an ordered sequence written `[a b c]`. It has the same
// collection semantics as List but is a distinct kind of form.
type Vector struct {
	elems []Form
	span  textpos.Range
}

// NewVector returns a vector form. The form takes ownership of elems.
func NewVector(elems []Form, span textpos.Range) *Vector { return &Vector{elems, span} }

// SourcePosition returns the range of text the form was read from.
func (f *Vector) SourcePosition() textpos.Range { return f.span }

// Value returns the subforms of the vector.
func (f *Vector) Value() interface{} { return Subforms(f) }

// Len returns the number of subforms.
func (f *Vector) Len() int { return len(f.elems) }

// Nth returns the nth subform.
func (f *Vector) Nth(n int) Form { return f.elems[n] }

// Map is a sequence of key/value pairs written `{k1 v1 k2 v2}`.
//
// Pairs are kept in the order they were written and keys are not
// deduplicated; Lookup resolves duplicate keys in favor of the last pair.
type Map struct {
	pairs []Pair
	span  textpos.Range
}

// NewMap returns a map form. The form takes ownership of pairs.
func NewMap(pairs []Pair, span textpos.Range) *Map { return &Map{pairs, span} }

// SourcePosition returns the range of text the form was read from.
func (f *Map) SourcePosition() textpos.Range { return f.span }

// Value returns the pairs of the map.
func (f *Map) Value() interface{} { return f.Pairs() }

// Len returns the number of pairs, including pairs with duplicate keys.
func (f *Map) Len() int { return len(f.pairs) }

// Pair returns the nth key/value pair.
func (f *Map) Pair(n int) Pair { return f.pairs[n] }

// Pairs returns the key/value pairs as a new slice.
func (f *Map) Pairs() []Pair {
	return append([]Pair(nil), f.pairs...)
}

// Lookup returns the value of the last pair whose key is Equal to key.
func (f *Map) Lookup(key Form) (Form, bool) {
	want := Key(key)
	for i := len(f.pairs) - 1; i >= 0; i-- {
		if Key(f.pairs[i].Key) == want {
			return f.pairs[i].Val, true
		}
	}
	return nil, false
}

// Set is a collection of distinct forms written `#{a b c}`.
//
// Elements that are Equal collapse into one; the first occurrence is kept.
type Set struct {
	elems []Form
	span  textpos.Range
}

// NewSet returns a set form holding the distinct elements of elems.
func NewSet(elems []Form, span textpos.Range) *Set {
	seen := make(map[string]bool, len(elems))
	var distinct []Form
	for _, e := range elems {
		k := Key(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		distinct = append(distinct, e)
	}
	return &Set{distinct, span}
}

// SourcePosition returns the range of text the form was read from.
func (f *Set) SourcePosition() textpos.Range { return f.span }

// Value returns the elements of the set.
func (f *Set) Value() interface{} { return Subforms(f) }

// Len returns the number of distinct elements.
func (f *Set) Len() int { return len(f.elems) }

// Nth returns the nth element in first-occurrence order.
func (f *Set) Nth(n int) Form { return f.elems[n] }

// Contains reports whether the set has an element Equal to elem.
func (f *Set) Contains(elem Form) bool {
	want := Key(elem)
	for _, e := range f.elems {
		if Key(e) == want {
			return true
		}
	}
	return false
}
