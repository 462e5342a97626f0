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

package kana

import (
	"strings"
	"unicode/utf8"
)

const (
	smallTsu    = 'ッ'
	smallTsuHi  = 'っ'
	syllabicN   = "ン"
	prolonged   = 'ー'
	maxSylLen   = 3
	maxKanaUnit = 2
)

// romajiToKatakana is a systematic syllable table (Hepburn plus
// the common Kunrei/Nihon-shiki spellings). Digraphs must be matched
// before single syllables - see RomanizedToHiragana.
var romajiToKatakana = map[string]string{
	"a": "ア", "i": "イ", "u": "ウ", "e": "エ", "o": "オ",

	"ka": "カ", "ki": "キ", "ku": "ク", "ke": "ケ", "ko": "コ",
	"kya": "キャ", "kyu": "キュ", "kyo": "キョ",
	"ga": "ガ", "gi": "ギ", "gu": "グ", "ge": "ゲ", "go": "ゴ",
	"gya": "ギャ", "gyu": "ギュ", "gyo": "ギョ",

	"sa": "サ", "shi": "シ", "si": "シ", "su": "ス", "se": "セ", "so": "ソ",
	"sha": "シャ", "shu": "シュ", "sho": "ショ", "she": "シェ",
	"sya": "シャ", "syu": "シュ", "syo": "ショ",
	"za": "ザ", "ji": "ジ", "zi": "ジ", "zu": "ズ", "ze": "ゼ", "zo": "ゾ",
	"ja": "ジャ", "ju": "ジュ", "jo": "ジョ", "je": "ジェ",
	"jya": "ジャ", "jyu": "ジュ", "jyo": "ジョ",
	"zya": "ジャ", "zyu": "ジュ", "zyo": "ジョ",

	"ta": "タ", "chi": "チ", "ti": "チ", "tsu": "ツ", "tu": "ツ", "te": "テ", "to": "ト",
	"cha": "チャ", "chu": "チュ", "cho": "チョ", "che": "チェ",
	"tya": "チャ", "tyu": "チュ", "tyo": "チョ",
	"da": "ダ", "di": "ヂ", "du": "ヅ", "de": "デ", "do": "ド",
	"dya": "ヂャ", "dyu": "ヂュ", "dyo": "ヂョ",

	"na": "ナ", "ni": "ニ", "nu": "ヌ", "ne": "ネ", "no": "ノ",
	"nya": "ニャ", "nyu": "ニュ", "nyo": "ニョ",

	"ha": "ハ", "hi": "ヒ", "fu": "フ", "hu": "フ", "he": "ヘ", "ho": "ホ",
	"hya": "ヒャ", "hyu": "ヒュ", "hyo": "ヒョ",
	"fa": "ファ", "fi": "フィ", "fe": "フェ", "fo": "フォ",
	"ba": "バ", "bi": "ビ", "bu": "ブ", "be": "ベ", "bo": "ボ",
	"bya": "ビャ", "byu": "ビュ", "byo": "ビョ",
	"pa": "パ", "pi": "ピ", "pu": "プ", "pe": "ペ", "po": "ポ",
	"pya": "ピャ", "pyu": "ピュ", "pyo": "ピョ",

	"ma": "マ", "mi": "ミ", "mu": "ム", "me": "メ", "mo": "モ",
	"mya": "ミャ", "myu": "ミュ", "myo": "ミョ",

	"ya": "ヤ", "yu": "ユ", "yo": "ヨ",

	"ra": "ラ", "ri": "リ", "ru": "ル", "re": "レ", "ro": "ロ",
	"rya": "リャ", "ryu": "リュ", "ryo": "リョ",

	"wa": "ワ", "wo": "ヲ",
	"vu": "ヴ",

	"-": "ー",
}

// hiraganaToRomaji is the (Hepburn) inverse table. Two-character
// units (digraphs) are looked up first.
var hiraganaToRomaji = map[string]string{
	"あ": "a", "い": "i", "う": "u", "え": "e", "お": "o",
	"ぁ": "a", "ぃ": "i", "ぅ": "u", "ぇ": "e", "ぉ": "o",

	"か": "ka", "き": "ki", "く": "ku", "け": "ke", "こ": "ko",
	"きゃ": "kya", "きゅ": "kyu", "きょ": "kyo",
	"が": "ga", "ぎ": "gi", "ぐ": "gu", "げ": "ge", "ご": "go",
	"ぎゃ": "gya", "ぎゅ": "gyu", "ぎょ": "gyo",

	"さ": "sa", "し": "shi", "す": "su", "せ": "se", "そ": "so",
	"しゃ": "sha", "しゅ": "shu", "しょ": "sho", "しぇ": "she",
	"ざ": "za", "じ": "ji", "ず": "zu", "ぜ": "ze", "ぞ": "zo",
	"じゃ": "ja", "じゅ": "ju", "じょ": "jo", "じぇ": "je",

	"た": "ta", "ち": "chi", "つ": "tsu", "て": "te", "と": "to",
	"ちゃ": "cha", "ちゅ": "chu", "ちょ": "cho", "ちぇ": "che",
	"だ": "da", "ぢ": "ji", "づ": "zu", "で": "de", "ど": "do",
	"ぢゃ": "ja", "ぢゅ": "ju", "ぢょ": "jo",

	"な": "na", "に": "ni", "ぬ": "nu", "ね": "ne", "の": "no",
	"にゃ": "nya", "にゅ": "nyu", "にょ": "nyo",

	"は": "ha", "ひ": "hi", "ふ": "fu", "へ": "he", "ほ": "ho",
	"ひゃ": "hya", "ひゅ": "hyu", "ひょ": "hyo",
	"ふぁ": "fa", "ふぃ": "fi", "ふぇ": "fe", "ふぉ": "fo",
	"ば": "ba", "び": "bi", "ぶ": "bu", "べ": "be", "ぼ": "bo",
	"びゃ": "bya", "びゅ": "byu", "びょ": "byo",
	"ぱ": "pa", "ぴ": "pi", "ぷ": "pu", "ぺ": "pe", "ぽ": "po",
	"ぴゃ": "pya", "ぴゅ": "pyu", "ぴょ": "pyo",

	"ま": "ma", "み": "mi", "む": "mu", "め": "me", "も": "mo",
	"みゃ": "mya", "みゅ": "myu", "みょ": "myo",

	"や": "ya", "ゆ": "yu", "よ": "yo",
	"ゃ": "ya", "ゅ": "yu", "ょ": "yo",

	"ら": "ra", "り": "ri", "る": "ru", "れ": "re", "ろ": "ro",
	"りゃ": "rya", "りゅ": "ryu", "りょ": "ryo",

	"わ": "wa", "を": "wo", "ゔ": "vu",
}

func isRomajiVowel(b byte) bool {
	switch b {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}

func isRomajiConsonant(b byte) bool {
	return b >= 'a' && b <= 'z' && !isRomajiVowel(b)
}

// romajiToKatakanaStr transliterates the ASCII parts of s
// and copies everything else unchanged.
func romajiToKatakanaStr(s string) string {
	var ans strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			ans.WriteRune(r)
			i += size
			continue
		}
		// sokuon: "kk", "tt", "ss", ... and "tch"
		if i+1 < len(s) && isRomajiConsonant(c) && c != 'n' &&
			(s[i+1] == c || c == 't' && strings.HasPrefix(s[i+1:], "ch")) {
			ans.WriteRune(smallTsu)
			i++
			continue
		}
		if c == 'n' {
			if i+1 < len(s) && s[i+1] == '\'' {
				ans.WriteString(syllabicN)
				i += 2
				continue
			}
			if i+1 == len(s) || !isRomajiVowel(s[i+1]) && s[i+1] != 'y' {
				ans.WriteString(syllabicN)
				i++
				continue
			}
		}
		var matched bool
		for size := maxSylLen; size > 0; size-- {
			if i+size > len(s) {
				continue
			}
			if kt, ok := romajiToKatakana[s[i:i+size]]; ok {
				ans.WriteString(kt)
				i += size
				matched = true
				break
			}
		}
		if !matched {
			ans.WriteByte(c)
			i++
		}
	}
	return ans.String()
}

// RomanizedToHiragana converts romanized text to hiragana. The input
// is lowercased first, then transliterated syllable by syllable to katakana
// (with digraphs like "sha", "chu", "kyo" producing a single digraph
// kana) and finally folded to hiragana. Characters without a romaji
// meaning (including any kana already present) are passed through.
func RomanizedToHiragana(s string) string {
	return KataToHira(romajiToKatakanaStr(strings.ToLower(s)))
}

func lastVowel(s string) byte {
	for i := len(s) - 1; i >= 0; i-- {
		if isRomajiVowel(s[i]) {
			return s[i]
		}
	}
	return 0
}

// KanaToRomanized converts hiragana/katakana to Hepburn romaji.
// Non-kana characters are copied unchanged.
func KanaToRomanized(s string) string {
	src := []rune(KataToHira(s))
	var ans strings.Builder
	var geminate bool
	for i := 0; i < len(src); {
		r := src[i]
		if r == smallTsuHi {
			geminate = true
			i++
			continue
		}
		if r == prolonged {
			if v := lastVowel(ans.String()); v != 0 {
				ans.WriteByte(v)
			}
			i++
			continue
		}
		if r == 'ん' {
			ans.WriteByte('n')
			if i+1 < len(src) {
				if next, ok := hiraganaToRomaji[string(src[i+1])]; ok &&
					(isRomajiVowel(next[0]) || next[0] == 'y') {
					ans.WriteByte('\'')
				}
			}
			i++
			continue
		}
		var roma string
		for size := maxKanaUnit; size > 0; size-- {
			if i+size > len(src) {
				continue
			}
			if v, ok := hiraganaToRomaji[string(src[i:i+size])]; ok {
				roma = v
				i += size
				break
			}
		}
		if roma == "" {
			if geminate {
				ans.WriteRune(smallTsuHi)
				geminate = false
			}
			ans.WriteRune(r)
			i++
			continue
		}
		if geminate {
			if strings.HasPrefix(roma, "ch") {
				ans.WriteByte('t')
			} else if isRomajiConsonant(roma[0]) {
				ans.WriteByte(roma[0])
			}
			geminate = false
		}
		ans.WriteString(roma)
	}
	if geminate {
		ans.WriteRune(smallTsuHi)
	}
	return ans.String()
}
