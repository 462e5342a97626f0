// Copyright 2025 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2025 Martin Zimandl <martin.zimandl@gmail.com>
// Copyright 2025 Department of Linguistics,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package furigana extracts phonetic readings from a simple content tree
// consisting of plain text nodes and annotated (ruby) units. The tree is
// independent of any markup library - see reverso for an HTML adapter.
package furigana

import (
	"strings"
	"unicode"

	"github.com/czcorpus/katsuyo/kana"
)

// Node is a content tree node. It is one of Text, Ruby, Element.
type Node interface {
	isNode()
}

// Text is a plain text node
type Text struct {
	Value string
}

func (Text) isNode() {}

// Ruby is an annotated unit with an optional base text
// and an optional phonetic reading.
type Ruby struct {
	Base       string
	Reading    string
	HasBase    bool
	HasReading bool
}

func (Ruby) isNode() {}

// Element is a container of other nodes
type Element struct {
	Children []Node
}

func (Element) isNode() {}

func NewText(v string) Text {
	return Text{Value: v}
}

func NewElement(children ...Node) Element {
	return Element{Children: children}
}

func NewRuby(base, reading string) Ruby {
	return Ruby{Base: base, Reading: reading, HasBase: true, HasReading: true}
}

func NewRubyBase(base string) Ruby {
	return Ruby{Base: base, HasBase: true}
}

func flatten(node Node, ans *strings.Builder) {
	switch tNode := node.(type) {
	case Text:
		ans.WriteString(tNode.Value)
	case *Text:
		ans.WriteString(tNode.Value)
	case Ruby:
		writeRuby(tNode, ans)
	case *Ruby:
		writeRuby(*tNode, ans)
	case Element:
		for _, ch := range tNode.Children {
			flatten(ch, ans)
		}
	case *Element:
		for _, ch := range tNode.Children {
			flatten(ch, ans)
		}
	}
}

func writeRuby(r Ruby, ans *strings.Builder) {
	if r.HasReading {
		ans.WriteString(r.Reading)

	} else if r.HasBase {
		ans.WriteString(kana.KataToHira(r.Base))
	}
}

func containsKana(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

// Extract returns a hiragana reading of the tree. Annotated units are
// replaced with their readings (or with their bases if there is no reading)
// and text is concatenated in document order. If the tree yields no kana,
// romajiFallback is transliterated instead. The second returned value
// is false if no reading can be obtained at all.
func Extract(root Node, romajiFallback string) (string, bool) {
	if root != nil {
		var buff strings.Builder
		flatten(root, &buff)
		ans := strings.TrimSpace(kana.KataToHira(buff.String()))
		if containsKana(ans) {
			return ans, true
		}
	}
	// romanized forms may be split into words ("tabemasen deshita")
	romajiFallback = strings.Join(strings.Fields(romajiFallback), "")
	if romajiFallback != "" {
		return kana.RomanizedToHiragana(romajiFallback), true
	}
	return "", false
}
