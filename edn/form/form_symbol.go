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

// Symbol is an identifier with an optional namespace, such as `foo` or
// `clojure.core/map`.
//
// Two symbols are equal when their names and namespaces are equal. An empty
// namespace means the symbol has none; the reader never produces a symbol
// with an empty namespace segment.
type Symbol struct {
	namespace, name string
	span            textpos.Range
}

// NewSymbol returns a symbol form. namespace is "" for unqualified symbols.
func NewSymbol(namespace, name string, span textpos.Range) *Symbol {
	return &Symbol{namespace, name, span}
}

// MakeSymbol returns an unqualified symbol with no source position.
func MakeSymbol(name string) *Symbol { return NewSymbol("", name, textpos.Range{}) }

// SourcePosition returns the range of text the form was read from.
func (s *Symbol) SourcePosition() textpos.Range { return s.span }

// Value returns the qualified name of the symbol.
func (s *Symbol) Value() interface{} { return s.QualifiedName() }

// Name returns the name part of the symbol.
func (s *Symbol) Name() string { return s.name }

// Namespace returns the namespace of the symbol, or "" if it has none.
func (s *Symbol) Namespace() string { return s.namespace }

// HasNamespace reports whether the symbol is namespace qualified.
func (s *Symbol) HasNamespace() bool { return s.namespace != "" }

// QualifiedName returns "namespace/name" or just "name".
func (s *Symbol) QualifiedName() string { return qualifiedName(s.namespace, s.name) }

// String returns the symbol as EDN text.
func (s *Symbol) String() string { return s.QualifiedName() }

// Equal reports whether two symbols have the same name and namespace.
func (s *Symbol) Equal(other *Symbol) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.name == other.name && s.namespace == other.namespace
}

// EqualString reports whether str is the qualified name of the symbol.
func (s *Symbol) EqualString(str string) bool { return s.QualifiedName() == str }

// Keyword is an identifier that evaluates to itself, such as `:foo` or
// `:user/id`. Equality follows the same rules as Symbol.
type Keyword struct {
	namespace, name string
	span            textpos.Range
}

// NewKeyword returns a keyword form. namespace is "" for unqualified
// keywords. name does not include the leading colon.
func NewKeyword(namespace, name string, span textpos.Range) *Keyword {
	return &Keyword{namespace, name, span}
}

// MakeKeyword returns an unqualified keyword with no source position.
func MakeKeyword(name string) *Keyword { return NewKeyword("", name, textpos.Range{}) }

// SourcePosition returns the range of text the form was read from.
func (k *Keyword) SourcePosition() textpos.Range { return k.span }

// Value returns the qualified name of the keyword without the colon.
func (k *Keyword) Value() interface{} { return k.QualifiedName() }

// Name returns the name part of the keyword.
func (k *Keyword) Name() string { return k.name }

// Namespace returns the namespace of the keyword, or "" if it has none.
func (k *Keyword) Namespace() string { return k.namespace }

// HasNamespace reports whether the keyword is namespace qualified.
func (k *Keyword) HasNamespace() bool { return k.namespace != "" }

// QualifiedName returns "namespace/name" or just "name", without the colon.
func (k *Keyword) QualifiedName() string { return qualifiedName(k.namespace, k.name) }

// String returns the keyword as EDN text, including the leading colon.
func (k *Keyword) String() string { return ":" + k.QualifiedName() }

// Equal reports whether two keywords have the same name and namespace.
func (k *Keyword) Equal(other *Keyword) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.name == other.name && k.namespace == other.namespace
}

// EqualString reports whether str is the qualified name of the keyword
// (without the leading colon).
func (k *Keyword) EqualString(str string) bool { return k.QualifiedName() == str }

func qualifiedName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "/" + name
}
