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

package edn_test

import (
	"errors"
	"fmt"

	"github.com/google/ednio/edn"
	"github.com/google/ednio/edn/form"
)

// Example shows how ReadForm() parses a map.
func Example() {
	r := edn.NewFileReader("config.edn", `{:name "ednio" :ports [80 443]}`)

	f, err := r.ReadForm()
	if err != nil {
		fmt.Printf("got error: %s", err.Error())
		return
	}
	m := f.(*form.Map)
	fmt.Printf("got map of %d entries\n", m.Len())
	ports, _ := m.Lookup(form.MakeKeyword("ports"))
	fmt.Printf("ports: %s at %s", ports, ports.SourcePosition())
	// Output:
	// got map of 2 entries
	// ports: [80 443] at 1:23-31
}

func ExampleReadError() {
	_, err := edn.NewFileReader("bad.edn", "(1 2\n 3").ReadAll()
	fmt.Println(err)
	fmt.Println(errors.Is(err, edn.UnterminatedCollection))
	// Output:
	// bad.edn:1:1: did not find end of collection token ')'
	// true
}
