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

package word

import (
	"github.com/czcorpus/katsuyo/kana"
)

// Word is a single looked up lexical item. It is created once
// per lookup by New and it is never modified afterwards.
type Word struct {

	// Original is the input exactly as provided by a user
	Original string

	// Text is the normalized form of the input (see kana.Normalize)
	Text string

	Script kana.Script
}

// Romaji returns a romanized view of the word. For words containing
// kanji there is no such view (we do not resolve kanji readings)
// and the second returned value is false.
func (w Word) Romaji() (string, bool) {
	switch w.Script {
	case kana.ScriptRomanized:
		return w.Text, true
	case kana.ScriptKana:
		return kana.KanaToRomanized(w.Text), true
	}
	return "", false
}

// Kana returns the Japanese script view of the word with all
// the katakana folded to hiragana.
func (w Word) Kana() string {
	if w.Script == kana.ScriptRomanized {
		return kana.RomanizedToHiragana(w.Text)
	}
	return kana.KataToHira(w.Text)
}

func (w Word) IsEmpty() bool {
	return w.Text == ""
}

func (w Word) String() string {
	return w.Text
}

// New normalizes raw input and determines its script
func New(raw string) Word {
	txt := kana.Normalize(raw)
	return Word{
		Original: raw,
		Text:     txt,
		Script:   kana.ScriptOf(txt),
	}
}
