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

// Package classify decides whether a word is one of the supported
// adjective types or a verb. The decision is made by an ordered
// list of rules where the first matching rule wins.
package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/czcorpus/katsuyo/kana"
	"github.com/czcorpus/katsuyo/word"
)

// Kind is a word class as recognized by the classifier
type Kind int

const (
	KindIrregularIi Kind = iota
	KindCompoundIi
	KindPlainI
	KindNa
	KindVerbCandidate
	KindUnrecognized
)

func (k Kind) String() string {
	switch k {
	case KindIrregularIi:
		return "irregularIi"
	case KindCompoundIi:
		return "compoundIi"
	case KindPlainI:
		return "plainI"
	case KindNa:
		return "na"
	case KindVerbCandidate:
		return "verb"
	case KindUnrecognized:
		return "unrecognized"
	}
	return "unknown"
}

// IsAdjective tells whether the kind is conjugated by local rules
func (k Kind) IsAdjective() bool {
	return k >= KindIrregularIi && k <= KindNa
}

// Variant is a classified word along with data needed to conjugate it
type Variant struct {
	Kind Kind
	Word word.Word

	// Stem is a romanized stem of an adjective. For CompoundIi,
	// it contains the prefix preceding the irregular "ii".
	// The value is empty if the word has no romanized view.
	Stem string

	// KanaStem is the Japanese script counterpart of Stem
	KanaStem string

	HasRomaji bool

	// Query is a value used to search for verb forms
	Query string
}

// markers contains script specific word endings
type markers struct {
	ii      string
	i       string
	na      string
	hasMora func(s string) bool
	aRow    func(s string) bool
}

var romajiMarkers = markers{
	ii: "ii",
	i:  "i",
	na: "na",
	hasMora: func(s string) bool {
		return s != "" && isVowel(s[len(s)-1])
	},
	aRow: func(s string) bool {
		return strings.HasSuffix(s, "a")
	},
}

var kanaMarkers = markers{
	ii: "いい",
	i:  "い",
	na: "な",
	hasMora: func(s string) bool {
		r, _ := utf8.DecodeLastRuneInString(s)
		return s != "" && !strings.ContainsRune(incompleteMoraKana, r)
	},
	aRow: func(s string) bool {
		r, _ := utf8.DecodeLastRuneInString(s)
		return strings.ContainsRune(aRowKana, r)
	},
}

const aRowKana = "あかさたなはまやらわがざだばぱぁゃゎ"

// small kana and the prolonged sound mark cannot end a stem on their own
const incompleteMoraKana = "っゃゅょぁぃぅぇぉゎー"

func isVowel(b byte) bool {
	return strings.IndexByte("aiueo", b) >= 0
}

// view is the variant of a word the rules are evaluated on.
// Romanized input is examined as is, anything else in hiragana.
type view struct {
	w       word.Word
	text    string
	markers markers
}

func newView(w word.Word) view {
	if w.Script == kana.ScriptRomanized {
		return view{w: w, text: w.Text, markers: romajiMarkers}
	}
	return view{w: w, text: w.Kana(), markers: kanaMarkers}
}

func (v view) isRomanized() bool {
	return v.w.Script == kana.ScriptRomanized
}

// doubleI tests for a word ending with the stand alone "ii" (i.e. the
// preceding mora, if any, is complete) and returns the part before it.
func (v view) doubleI() (string, bool) {
	if !strings.HasSuffix(v.text, v.markers.ii) {
		return "", false
	}
	prefix := strings.TrimSuffix(v.text, v.markers.ii)
	if prefix != "" && !v.markers.hasMora(prefix) {
		return "", false
	}
	return prefix, true
}

// stems creates both the romanized and the Japanese script stem
// from a stem found in the examined text.
func (v view) stems(stem string) (roma, kanaStem string, hasRoma bool) {
	if v.isRomanized() {
		return stem, kana.RomanizedToHiragana(stem), true
	}
	if v.w.Script == kana.ScriptKana {
		return kana.KanaToRomanized(stem), stem, true
	}
	return "", stem, false
}

func (v view) variant(kind Kind, stem string) Variant {
	roma, kanaStem, hasRoma := v.stems(stem)
	return Variant{
		Kind:      kind,
		Word:      v.w,
		Stem:      roma,
		KanaStem:  kanaStem,
		HasRomaji: hasRoma,
	}
}

// Rule is a single named classification predicate
type Rule struct {
	Name  string
	Kind  Kind
	Match func(w word.Word) (Variant, bool)
}

func matchIrregularIi(w word.Word) (Variant, bool) {
	v := newView(w)
	if v.text != v.markers.ii {
		return Variant{}, false
	}
	return v.variant(KindIrregularIi, ""), true
}

func matchCompoundIi(w word.Word) (Variant, bool) {
	v := newView(w)
	prefix, ok := v.doubleI()
	if !ok || prefix == "" || v.markers.aRow(prefix) {
		return Variant{}, false
	}
	return v.variant(KindCompoundIi, prefix), true
}

func matchPlainI(w word.Word) (Variant, bool) {
	v := newView(w)
	if !strings.HasSuffix(v.text, v.markers.i) {
		return Variant{}, false
	}
	stem := strings.TrimSuffix(v.text, v.markers.i)
	// the final "i" must be a mora of its own (hayai, atarashii, kawaii)
	if !v.markers.hasMora(stem) {
		return Variant{}, false
	}
	if prefix, ok := v.doubleI(); ok && !v.markers.aRow(prefix) {
		return Variant{}, false
	}
	ans := v.variant(KindPlainI, stem)
	if v.isRomanized() {
		// converting the whole word keeps syllables split correctly
		// (e.g. "oishii" -> おいし + い rather than "oish")
		ans.KanaStem = strings.TrimSuffix(kana.RomanizedToHiragana(v.text), kanaMarkers.i)
	}
	return ans, true
}

func matchNa(w word.Word) (Variant, bool) {
	v := newView(w)
	if !strings.HasSuffix(v.text, v.markers.na) {
		return Variant{}, false
	}
	// the marker may be typed as a separate word ("kirei na")
	stem := strings.TrimSpace(strings.TrimSuffix(v.text, v.markers.na))
	if stem == "" {
		return Variant{}, false
	}
	return v.variant(KindNa, stem), true
}

var (
	romajiVerbEndings = []string{"ru", "ku", "gu", "su", "nu", "bu", "mu"}
	kanaVerbEndings   = "うるくぐすつぬぶむ"
)

func isVerbLike(v view) bool {
	if v.isRomanized() {
		for _, e := range romajiVerbEndings {
			if strings.HasSuffix(v.text, e) && len(v.text) > len(e) {
				return true
			}
		}
		// bare "u" as in kau, omou, iu
		n := len(v.text)
		return n >= 2 && v.text[n-1] == 'u' && isVowel(v.text[n-2])
	}
	r, _ := utf8.DecodeLastRuneInString(v.text)
	return utf8.RuneCountInString(v.text) > 1 && strings.ContainsRune(kanaVerbEndings, r)
}

func matchVerb(w word.Word) (Variant, bool) {
	v := newView(w)
	if !isVerbLike(v) {
		return Variant{}, false
	}
	ans := Variant{Kind: KindVerbCandidate, Word: w, Query: w.Text}
	if roma, ok := w.Romaji(); ok {
		ans.Query = roma
		ans.HasRomaji = true
	}
	return ans, true
}

var rules = []Rule{
	{Name: "irregular ii", Kind: KindIrregularIi, Match: matchIrregularIi},
	{Name: "compound ii", Kind: KindCompoundIi, Match: matchCompoundIi},
	{Name: "i-adjective", Kind: KindPlainI, Match: matchPlainI},
	{Name: "na-adjective", Kind: KindNa, Match: matchNa},
	{Name: "verb candidate", Kind: KindVerbCandidate, Match: matchVerb},
}

// Rules returns the classification rules in the order
// they are applied.
func Rules() []Rule {
	ans := make([]Rule, len(rules))
	copy(ans, rules)
	return ans
}

// Classify applies the rules to w and returns a variant produced
// by the first matching one. If nothing matches, a variant of
// the KindUnrecognized kind is returned.
func Classify(w word.Word) Variant {
	for _, r := range rules {
		if ans, ok := r.Match(w); ok {
			return ans
		}
	}
	return Variant{Kind: KindUnrecognized, Word: w}
}
