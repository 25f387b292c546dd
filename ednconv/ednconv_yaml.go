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

package ednconv

import (
	"bytes"
	"fmt"
	"math"

	"github.com/google/ednio/edn/form"
	"gopkg.in/yaml.v3"
)

// MarshalYAML returns f as a YAML document. Maps become mappings in pair
// order, other collections become sequences and a tagged literal #tag value
// becomes the YAML local tag !tag on the value's node.
func MarshalYAML(f form.Form, opts ...Option) ([]byte, error) {
	node, err := YAMLNode(f, opts...)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("error encoding form at %s: %w", f.SourcePosition(), err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAMLNode returns the YAML node tree for f. The Line and Column of each node
// are set from the form's source position.
func YAMLNode(f form.Form, opts ...Option) (*yaml.Node, error) {
	return newConverter(opts).toNode(f)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func (c *converter) toNode(f form.Form) (*yaml.Node, error) {
	n, err := c.toNodeNoPos(f)
	if err != nil {
		return nil, err
	}
	if start := f.SourcePosition().Start(); start.IsValid() {
		n.Line, n.Column = start.Line().Ordinal(), start.Column().Ordinal()
	}
	return n, nil
}

func (c *converter) toNodeNoPos(f form.Form) (*yaml.Node, error) {
	switch f := f.(type) {
	case *form.Nil:
		return scalar("!!null", "null"), nil
	case *form.Bool:
		return scalar("!!bool", f.String()), nil
	case *form.Integer:
		return scalar("!!int", f.BigInt().String()), nil
	case *form.Float:
		if f.IsExact() {
			return scalar("!!float", normalizeDecimal(f.Decimal())), nil
		}
		return scalar("!!float", yamlFloat(f.Float64())), nil
	case *form.Ratio:
		return scalar("!!float", yamlFloat(ratioFloat(f))), nil
	case *form.String:
		return scalar("!!str", f.StringValue()), nil
	case *form.Char:
		return scalar("!!str", string(f.Rune())), nil
	case *form.Symbol:
		return scalar("!!str", f.QualifiedName()), nil
	case *form.Keyword:
		return scalar("!!str", f.QualifiedName()), nil
	case *form.Map:
		return c.mappingNode(f)
	case *form.Tagged:
		n, err := c.toNode(f.Element())
		if err != nil {
			return nil, err
		}
		n.Tag = "!" + f.Tag().QualifiedName()
		return n, nil
	case form.Sequential:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < f.Len(); i++ {
			child, err := c.toNode(f.Nth(i))
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot convert form of type %T at %s", f, f.SourcePosition())
}

// mappingNode converts a map. As with ToGo, a repeated key keeps its first
// position and its last value.
func (c *converter) mappingNode(f *form.Map) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	index := map[string]int{}
	for i := 0; i < f.Len(); i++ {
		p := f.Pair(i)
		key := c.key(p.Key)
		val, err := c.toNode(p.Val)
		if err != nil {
			return nil, err
		}
		if j, ok := index[key]; ok {
			warnDuplicate(key, p.Key)
			n.Content[j+1] = val
			continue
		}
		index[key] = len(n.Content)
		keyNode := scalar("!!str", key)
		if start := p.Key.SourcePosition().Start(); start.IsValid() {
			keyNode.Line, keyNode.Column = start.Line().Ordinal(), start.Column().Ordinal()
		}
		n.Content = append(n.Content, keyNode, val)
	}
	return n, nil
}

func yamlFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	case math.IsNaN(v):
		return ".nan"
	}
	return form.FormatFloat(v)
}
