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

// Package kana provides conversions between romanized Japanese (romaji),
// hiragana and katakana together with a few script classification helpers.
// All the functions are pure and leave characters outside their target
// Unicode blocks untouched.
package kana

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	hiraganaFirst = 0x3041
	hiraganaLast  = 0x3096
	katakanaFirst = 0x30A1
	katakanaLast  = 0x30F6
	kanaBlockDiff = katakanaFirst - hiraganaFirst

	kanaBlockStart = 0x3040
	kanaBlockEnd   = 0x30FF

	kanjiFirst = 0x4E00
	kanjiLast  = 0x9FAF
)

// Script describes which writing system a piece of text uses
type Script int

const (
	ScriptRomanized Script = iota
	ScriptKana
	ScriptMixed
)

func (s Script) String() string {
	switch s {
	case ScriptRomanized:
		return "romanized"
	case ScriptKana:
		return "kana"
	case ScriptMixed:
		return "mixed"
	}
	return "unknown"
}

// macronReplacer expands Hepburn long vowels so that e.g. "tōru" and "tooru"
// end up written the same way as typed on a plain keyboard.
var macronReplacer = strings.NewReplacer(
	"ā", "aa",
	"ī", "ii",
	"ū", "uu",
	"ē", "ei",
	"ō", "ou",
	"â", "aa",
	"î", "ii",
	"û", "uu",
	"ê", "ei",
	"ô", "ou",
)

func isKanaRune(r rune) bool {
	return r >= kanaBlockStart && r <= kanaBlockEnd
}

func isKanjiRune(r rune) bool {
	return r >= kanjiFirst && r <= kanjiLast
}

// IsRomanized tests whether all the characters of s are ASCII.
func IsRomanized(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// IsKanaOnly tests whether s (with punctuation and spaces ignored)
// is written only in hiragana and/or katakana. An empty string
// (or a string of punctuation only) is not considered kana.
func IsKanaOnly(s string) bool {
	var numKana int
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		if !isKanaRune(r) {
			return false
		}
		numKana++
	}
	return numKana > 0
}

// ContainsKanji tests whether s contains at least one CJK ideograph
func ContainsKanji(s string) bool {
	for _, r := range s {
		if isKanjiRune(r) {
			return true
		}
	}
	return false
}

// ScriptOf classifies s as romanized, kana-only or mixed
// (i.e. containing kanji or anything else)
func ScriptOf(s string) Script {
	if IsRomanized(s) {
		return ScriptRomanized
	}
	if IsKanaOnly(s) {
		return ScriptKana
	}
	return ScriptMixed
}

// KataToHira converts katakana characters to their hiragana counterparts.
func KataToHira(s string) string {
	return strings.Map(
		func(r rune) rune {
			if r >= katakanaFirst && r <= katakanaLast {
				return r - kanaBlockDiff
			}
			return r
		},
		s,
	)
}

// HiraToKata converts hiragana characters to their katakana counterparts.
func HiraToKata(s string) string {
	return strings.Map(
		func(r rune) rune {
			if r >= hiraganaFirst && r <= hiraganaLast {
				return r + kanaBlockDiff
			}
			return r
		},
		s,
	)
}

// Normalize prepares raw user input for classification:
// full-width latin and half-width katakana are folded (NFKC),
// latin letters are lowercased, surrounding space is removed
// and long vowels written with macrons/circumflexes are expanded.
func Normalize(s string) string {
	// transform.Chain keeps internal buffers so we create a fresh one per call
	t := transform.Chain(norm.NFKC, runes.Map(unicode.ToLower))
	ans, _, err := transform.String(t, s)
	if err != nil {
		ans = strings.ToLower(s)
	}
	return strings.TrimSpace(macronReplacer.Replace(ans))
}
