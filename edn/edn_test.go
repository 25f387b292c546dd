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
	"testing"

	"github.com/google/ednio/edn/form"
	"github.com/google/ednio/internal/formcmp"
	"github.com/google/go-cmp/cmp"
)

// summarize returns "<type> <edn text>" for each form in code, or the error
// kind if reading fails.
func summarize(code string, opts ...Option) []string {
	var ret []string
	fr := NewFileReader("a.edn", code, opts...)
	for {
		f, err := fr.ReadForm()
		if err == io.EOF {
			return ret
		}
		if err != nil {
			return append(ret, fmt.Sprintf("error: %s", KindOf(err)))
		}
		ret = append(ret, fmt.Sprintf("%s %s", strings.TrimPrefix(fmt.Sprintf("%T", f), "*form."), f))
	}
}

func TestReadForms(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{"empty input", "", nil},
		{"only whitespace and commas", " \t,\n, ", nil},
		{"atoms", "nil true false", []string{"Nil nil", "Bool true", "Bool false"}},
		{"nested list", "(1 2 (3 4))", []string{"List (1 2 (3 4))"}},
		{"vector", "[a, b]", []string{"Vector [a b]"}},
		{"map keeps pair order", "{:a 1 :b 2}", []string{"Map {:a 1, :b 2}"}},
		{"map keeps duplicate keys", "{:a 1 :a 2}", []string{"Map {:a 1, :a 2}"}},
		{"set collapses duplicates", "#{1 2 1}", []string{"Set #{1 2}"}},
		{"empty collections", "() [] {} #{}", []string{"List ()", "Vector []", "Map {}", "Set #{}"}},
		{"comment produces no form", ";comment\n42", []string{"Integer 42"}},
		{"comment at end of input", "1 ; done", []string{"Integer 1"}},
		{"comment inside collection", "[1 ; one\n 2]", []string{"Vector [1 2]"}},
		{"string escapes", `"a\nb\t\"c\"\\"`, []string{`String "a\nb\t\"c\"\\"`}},
		{"string unicode escape", `"\u00e9\u0041"`, []string{`String "éA"`}},
		{"string octal escape", `"\101\7x"`, []string{`String "A\u0007x"`}},
		{"string surrogate pair", `"\ud83d\ude00"`, []string{`String "😀"`}},
		{"string unpaired surrogate", `"\ud83dx"`, []string{`String "` + "\uFFFD" + `x"`}},
		{"string literal newline", "\"a\nb\"", []string{`String "a\nb"`}},
		{"named characters", `\newline \space \tab \backspace \formfeed \return`, []string{
			`Char \newline`, `Char \space`, `Char \tab`, `Char \backspace`, `Char \formfeed`, `Char \return`,
		}},
		{"single characters", `\a \( \\ \u \o`, []string{`Char \a`, `Char \(`, `Char \\`, `Char \u`, `Char \o`}},
		{"unicode and octal characters", `\u0041 \o101 \o7`, []string{`Char \A`, `Char \A`, `Char \u0007`}},
		{"character in vector", `[\a]`, []string{`Vector [\a]`}},
		{"integers", "0 -0 +5 42 10N 0x1F 0X1f 017 2r101 36rZZ -8r17", []string{
			"Integer 0", "Integer 0", "Integer 5", "Integer 42", "Integer 10N", "Integer 31",
			"Integer 31", "Integer 15", "Integer 5", "Integer 1295", "Integer -15",
		}},
		{"big integer", "123456789012345678901234567890", []string{"Integer 123456789012345678901234567890"}},
		{"floats", "1.5 -2.25 1e3 1. 2.5E-1 +0.5", []string{
			"Float 1.5", "Float -2.25", "Float 1000.0", "Float 1.0", "Float 0.25", "Float 0.5",
		}},
		{"exact decimal", "2.50M 3M", []string{"Float 2.50M", "Float 3M"}},
		{"ratios", "1/2 -3/4 2/4", []string{"Ratio 1/2", "Ratio -3/4", "Ratio 2/4"}},
		{"symbolic values", "##Inf ##-Inf ##NaN", []string{"Float ##Inf", "Float ##-Inf", "Float ##NaN"}},
		{"symbols", "foo foo/bar / clojure.core// + - -> a.b/c*", []string{
			"Symbol foo", "Symbol foo/bar", "Symbol /", "Symbol clojure.core//",
			"Symbol +", "Symbol -", "Symbol ->", "Symbol a.b/c*",
		}},
		{"sign without digit is a symbol", "-a +", []string{"Symbol -a", "Symbol +"}},
		{"keywords", ":foo :foo/bar :nil :/", []string{
			"Keyword :foo", "Keyword :foo/bar", "Keyword :nil", "Keyword :/",
		}},
		{"discard", "a #_ b c", []string{"Symbol a", "Symbol c"}},
		{"discard in collection", "[1 #_ [2 3] 4]", []string{"Vector [1 4]"}},
		{"token ends at delimiter", "a(b)", []string{"Symbol a", "List (b)"}},
		{"hash inside token", "a#b", []string{"Symbol a#b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, summarize(tt.code)); diff != "" {
				t.Errorf("reading %q, unexpected diff (-want +got):\n%s", tt.code, diff)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		code string
		want ErrorKind
	}{
		{"{:a}", OddMapEntries},
		{"{:a 1 :b}", OddMapEntries},
		{"::bad", InvalidKeyword},
		{"::bad/x", InvalidKeyword},
		{": a", InvalidKeyword},
		{":", InvalidKeyword},
		{":a:", InvalidKeyword},
		{":a/1", InvalidKeyword},
		{"foo:", InvalidSymbol},
		{"a/1b", InvalidSymbol},
		{"a/b/c", InvalidSymbol},
		{"a:/b", InvalidSymbol},
		{"/a", InvalidSymbol},
		{"a/", InvalidSymbol},
		{"@", InvalidSymbol},
		{`"abc`, UnterminatedString},
		{`"ab\`, UnterminatedString},
		{"(1 2", UnterminatedCollection},
		{"[1 [2]", UnterminatedCollection},
		{"{:a 1", UnterminatedCollection},
		{"#{1", UnterminatedCollection},
		{"(1 ]", UnterminatedCollection},
		{")", UnmatchedDelimiter},
		{"1 }", UnmatchedDelimiter},
		{`"\q"`, InvalidEscape},
		{`"\u12"`, InvalidEscape},
		{`"\8"`, InvalidEscape},
		{`\foo`, InvalidCharacterLiteral},
		{`\ `, InvalidCharacterLiteral},
		{`\u12`, InvalidEscape},
		{`\uD800`, InvalidEscape},
		{`[\udfff]`, InvalidEscape},
		{`\o9`, InvalidEscape},
		{`\o1234`, InvalidEscape},
		{`\`, UnexpectedEOF},
		{"1.2.3", InvalidNumber},
		{"09", InvalidNumber},
		{"1/0", InvalidNumber},
		{"40r1", InvalidNumber},
		{"2r3", InvalidNumber},
		{"1x", InvalidNumber},
		{"-1a", InvalidNumber},
		{"0x", InvalidNumber},
		{"#a", InvalidDispatch},
		{"#", UnexpectedEOF},
		{"##Foo", InvalidDispatch},
		{"#_", UnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := NewFileReader("", tt.code).ReadAll()
			if !errors.Is(err, tt.want) {
				t.Fatalf("ReadAll(%q) error = %v, want kind %v", tt.code, err, tt.want)
			}
			var re *ReadError
			if !errors.As(err, &re) {
				t.Fatalf("ReadAll(%q) error %v is not a *ReadError", tt.code, err)
			}
			if re.Token == "" {
				t.Errorf("ReadAll(%q) error has no token", tt.code)
			}
			if !re.Span.Start().IsValid() {
				t.Errorf("ReadAll(%q) error has invalid position %v", tt.code, re.Span)
			}
		})
	}
}

func TestReadErrorMessage(t *testing.T) {
	_, err := NewFileReader("x.edn", "[1 2]\n  {:a}").ReadAll()
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "x.edn:2:3: map literal must contain an even number of forms, got 1"; got != want {
		t.Errorf("got error %q, want %q", got, want)
	}
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("error %v is not a *ReadError", err)
	}
	if diff := cmp.Diff("{", re.Token); diff != "" {
		t.Errorf("unexpected token diff:\n%s", diff)
	}
	if got, want := re.Span.String(), "2:3-7"; got != want {
		t.Errorf("span = %q, want %q", got, want)
	}
}

func TestInvalidNumberCause(t *testing.T) {
	_, err := ReadString("40r1")
	if !errors.Is(err, InvalidNumber) {
		t.Fatalf("got %v, want InvalidNumber", err)
	}
	if !strings.Contains(err.Error(), `"40r1"`) {
		t.Errorf("error %q does not mention the token", err)
	}
}

func TestReadSpans(t *testing.T) {
	node := func(typ, span, text string, children ...formcmp.Node) formcmp.Node {
		return formcmp.Node{Type: typ, Span: span, Text: text, Children: children}
	}
	tests := []struct {
		code string
		want []formcmp.Node
	}{
		{
			"(1 2 (3 4))",
			[]formcmp.Node{
				node("List", "1:1-12", "",
					node("Integer", "1:2-3", "1"),
					node("Integer", "1:4-5", "2"),
					node("List", "1:6-11", "",
						node("Integer", "1:7-8", "3"),
						node("Integer", "1:9-10", "4"))),
			},
		},
		{
			"{:a 1\n :b 2}",
			[]formcmp.Node{
				node("Map", "1:1-2:7", "",
					node("Keyword", "1:2-4", ":a"),
					node("Integer", "1:5-6", "1"),
					node("Keyword", "2:2-4", ":b"),
					node("Integer", "2:5-6", "2")),
			},
		},
		{
			` #{a} "s" \c`,
			[]formcmp.Node{
				node("Set", "1:2-6", "", node("Symbol", "1:4-5", "a")),
				node("String", "1:7-10", `"s"`),
				node("Char", "1:11-13", `\c`),
			},
		},
		{
			"foo/bar\n  :k",
			[]formcmp.Node{
				node("Symbol", "1:1-8", "foo/bar"),
				node("Keyword", "2:3-5", ":k"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := NewFileReader("a.edn", tt.code).ReadAll()
			if err != nil {
				t.Fatalf("ReadAll(%q) failed: %v", tt.code, err)
			}
			if diff := cmp.Diff(tt.want, formcmp.Nodes(got)); diff != "" {
				t.Errorf("unexpected span diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadSentinel(t *testing.T) {
	fr := NewFileReader("", " ) 1")
	r, err := fr.Read(')')
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind() != ResultSentinelReached {
		t.Errorf("Read(')') kind = %v, want ResultSentinelReached", r.Kind())
	}
	f, err := fr.ReadForm()
	if err != nil {
		t.Fatal(err)
	}
	if !form.Equal(f, form.MakeInt(1)) {
		t.Errorf("got %s, want 1", f)
	}
	r, err = fr.Read(')')
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind() != ResultEndOfInput {
		t.Errorf("Read(')') at end kind = %v, want ResultEndOfInput", r.Kind())
	}
	if _, err := fr.ReadForm(); err != io.EOF {
		t.Errorf("ReadForm() at end error = %v, want io.EOF", err)
	}
}

func TestMaxDepth(t *testing.T) {
	if _, err := ReadString("[[1]]", WithMaxDepth(2)); err != nil {
		t.Errorf("depth 2 input failed with max depth 2: %v", err)
	}
	_, err := ReadString("[[[1]]]", WithMaxDepth(2))
	if !errors.Is(err, NestingTooDeep) {
		t.Errorf("got %v, want NestingTooDeep", err)
	}
}

func TestIndependentSourcesAgree(t *testing.T) {
	const code = `{:users [{:id 1 :name "a" :tags #{:x :y}} {:id 2/3 :name "b\u00e9"}]} (f 1.5M \z)`
	a, err := NewFileReader("a", code).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewReader("b", strings.NewReader(code)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b, formcmp.Transform()); diff != "" {
		t.Errorf("string and io.Reader sources disagree:\n%s", diff)
	}
}

func TestPrintedFormsReadBack(t *testing.T) {
	const code = `[nil true 1 -2N 1.5 2.5M 1e300 3/4 "q\"\n\u0001" \newline \x :k :ns/k sym ns/sym () {:a [1]} #{1} ##Inf]`
	f, err := ReadString(code)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ReadString(f.String())
	if err != nil {
		t.Fatalf("reading printed form %s failed: %v", f, err)
	}
	if diff := cmp.Diff(f, again, formcmp.Transform(formcmp.IgnoreSourcePositions())); diff != "" {
		t.Errorf("printed form did not read back equal:\n%s", diff)
	}
}
