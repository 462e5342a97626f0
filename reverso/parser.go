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

package reverso

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/czcorpus/katsuyo/furigana"
	"github.com/czcorpus/katsuyo/verb"
	"golang.org/x/net/html"
)

const (
	tenseBlockSelector = "div.blue-box-wrap"
	tenseLabelAttr     = "mobile-title"
	formSelector       = "span.ruby"
	romajiSelector     = "div.romaji"
)

// rubyToNodes converts a <ruby> element into annotated units. A single
// element may contain more base/reading pairs (e.g. <ruby>食<rt>た</rt>
// 飲<rt>の</rt></ruby>), each <rt> closes one unit.
func rubyToNodes(node *html.Node) []furigana.Node {
	ans := make([]furigana.Node, 0, 2)
	var curr furigana.Ruby
	for ch := node.FirstChild; ch != nil; ch = ch.NextSibling {
		switch {
		case ch.Type == html.TextNode:
			if strings.TrimSpace(ch.Data) != "" {
				curr.Base += strings.TrimSpace(ch.Data)
				curr.HasBase = true
			}
		case ch.Type == html.ElementNode && ch.Data == "rb":
			curr.Base += nodeText(ch)
			curr.HasBase = true
		case ch.Type == html.ElementNode && ch.Data == "rt":
			curr.Reading = nodeText(ch)
			curr.HasReading = true
			ans = append(ans, curr)
			curr = furigana.Ruby{}
		}
	}
	if curr.HasBase {
		ans = append(ans, curr)
	}
	return ans
}

func nodeText(node *html.Node) string {
	var buff strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buff.WriteString(n.Data)
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(node)
	return strings.TrimSpace(buff.String())
}

// toContentNode converts a HTML subtree into a furigana content tree
func toContentNode(node *html.Node) furigana.Node {
	switch node.Type {
	case html.TextNode:
		return furigana.NewText(node.Data)
	case html.ElementNode:
		switch node.Data {
		case "ruby":
			return furigana.NewElement(rubyToNodes(node)...)
		case "rt", "rp", "script", "style":
			return nil
		}
	}
	ans := furigana.NewElement()
	for ch := node.FirstChild; ch != nil; ch = ch.NextSibling {
		if cn := toContentNode(ch); cn != nil {
			ans.Children = append(ans.Children, cn)
		}
	}
	return ans
}

// ParsePage extracts tense blocks from a conjugator page.
// Blocks without a label are skipped, for blocks without
// a form element, only the romanized variant is kept.
// If more blocks share a label, the last one wins.
func ParsePage(src string) (verb.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	ans := make(verb.Page)
	doc.Find(tenseBlockSelector).Each(func(i int, s *goquery.Selection) {
		label := strings.TrimSpace(s.AttrOr(tenseLabelAttr, ""))
		if label == "" {
			return
		}
		var frag verb.Fragment
		if form := s.Find(formSelector).First(); form.Length() > 0 {
			frag.Markup = toContentNode(form.Get(0))
		}
		frag.Romaji = strings.TrimSpace(s.Find(romajiSelector).First().Text())
		ans[label] = frag
	})
	return ans, nil
}
