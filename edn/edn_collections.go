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
	"github.com/google/ednio/edn/form"
)

// readDelimited reads forms until close is reached. start is the offset of
// the first character of opener.
func (fr *FormReader) readDelimited(opener string, close rune, start int) ([]form.Form, error) {
	fr.depth++
	defer func() { fr.depth-- }()
	if fr.maxDepth > 0 && fr.depth > fr.maxDepth {
		return nil, fr.errorf(NestingTooDeep, opener, start, "collection nesting exceeds maximum depth %d", fr.maxDepth)
	}

	forms := []form.Form{}
	for {
		r, err := fr.Read(close)
		if err != nil {
			return nil, err
		}
		switch r.Kind() {
		case ResultEndOfInput:
			return nil, fr.errorf(UnterminatedCollection, opener, start, "did not find end of collection token %q", close)
		case ResultSentinelReached:
			return forms, nil
		case ResultForm:
			forms = append(forms, r.Form())
		}
	}
}

// readList is the macro for '('.
func (fr *FormReader) readList(_ rune) (form.Form, error) {
	start := fr.src.Offset() - 1
	forms, err := fr.readDelimited("(", ')', start)
	if err != nil {
		return nil, err
	}
	return form.NewList(forms, fr.src.Span(start)), nil
}

// readVector is the macro for '['.
func (fr *FormReader) readVector(_ rune) (form.Form, error) {
	start := fr.src.Offset() - 1
	forms, err := fr.readDelimited("[", ']', start)
	if err != nil {
		return nil, err
	}
	return form.NewVector(forms, fr.src.Span(start)), nil
}

// readMap is the macro for '{'.
func (fr *FormReader) readMap(_ rune) (form.Form, error) {
	start := fr.src.Offset() - 1
	forms, err := fr.readDelimited("{", '}', start)
	if err != nil {
		return nil, err
	}
	if len(forms)%2 != 0 {
		return nil, fr.errorf(OddMapEntries, "{", start, "map literal must contain an even number of forms, got %d", len(forms))
	}
	pairs := make([]form.Pair, 0, len(forms)/2)
	for i := 0; i < len(forms); i += 2 {
		pairs = append(pairs, form.Pair{Key: forms[i], Val: forms[i+1]})
	}
	return form.NewMap(pairs, fr.src.Span(start)), nil
}

// readSet is the dispatch macro for '{' following '#'.
func (fr *FormReader) readSet(_ rune) (form.Form, error) {
	start := fr.src.Offset() - 2
	forms, err := fr.readDelimited("#{", '}', start)
	if err != nil {
		return nil, err
	}
	return form.NewSet(forms, fr.src.Span(start)), nil
}
