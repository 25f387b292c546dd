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
	"sort"
	"strconv"
	"strings"
)

// Equal reports whether two forms denote the same value. Source positions are
// ignored.
//
// Forms of different kinds are never equal (1 and 1.0 differ). Ratios compare
// by rational value, so 1/2 equals 2/4. Sets compare irrespective of element
// order. Maps compare their pairs in order. M suffixed floats compare by
// their exact decimal value and never equal plain floats.
func Equal(a, b Form) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Key(a) == Key(b)
}

// Key returns a canonical identity string for f: two forms are Equal if and
// only if their keys are identical. Keys are not EDN text and should not be
// parsed.
func Key(f Form) string {
	b := &strings.Builder{}
	writeKey(b, f)
	return b.String()
}

func writeKey(b *strings.Builder, f Form) {
	switch f := f.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Nil:
		b.WriteString("n")
	case *Bool:
		fmt.Fprintf(b, "b:%t", f.val)
	case *Integer:
		fmt.Fprintf(b, "i:%s", f.val.String())
	case *Float:
		if f.decimal != "" {
			fmt.Fprintf(b, "m:%s", f.Number().ExactString())
			return
		}
		fmt.Fprintf(b, "f:%s", strconv.FormatFloat(f.val, 'g', -1, 64))
	case *Ratio:
		fmt.Fprintf(b, "r:%s", f.Rat().RatString())
	case *String:
		fmt.Fprintf(b, "s:%q", f.val)
	case *Char:
		fmt.Fprintf(b, "c:%q", f.val)
	case *Symbol:
		fmt.Fprintf(b, "y:%q/%q", f.namespace, f.name)
	case *Keyword:
		fmt.Fprintf(b, "k:%q/%q", f.namespace, f.name)
	case *List:
		writeSeqKey(b, "l(", f.elems)
	case *Vector:
		writeSeqKey(b, "v(", f.elems)
	case *Map:
		b.WriteString("m(")
		for _, p := range f.pairs {
			writeKey(b, p.Key)
			b.WriteString(" ")
			writeKey(b, p.Val)
			b.WriteString(" ")
		}
		b.WriteString(")")
	case *Set:
		keys := make([]string, 0, len(f.elems))
		for _, e := range f.elems {
			keys = append(keys, Key(e))
		}
		sort.Strings(keys)
		b.WriteString("e(")
		for _, k := range keys {
			b.WriteString(k)
			b.WriteString(" ")
		}
		b.WriteString(")")
	case *Tagged:
		fmt.Fprintf(b, "t:%q/%q ", f.tag.namespace, f.tag.name)
		writeKey(b, f.value)
	default:
		fmt.Fprintf(b, "?%T:%s", f, f.String())
	}
}

func writeSeqKey(b *strings.Builder, open string, elems []Form) {
	b.WriteString(open)
	for _, e := range elems {
		writeKey(b, e)
		b.WriteString(" ")
	}
	b.WriteString(")")
}
