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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRomanized(t *testing.T) {
	assert.True(t, IsRomanized("taberu"))
	assert.True(t, IsRomanized("de wa nai"))
	assert.False(t, IsRomanized("たべる"))
	assert.False(t, IsRomanized("食べる"))
}

func TestIsKanaOnly(t *testing.T) {
	assert.True(t, IsKanaOnly("たべる"))
	assert.True(t, IsKanaOnly("ラーメン"))
	assert.True(t, IsKanaOnly("きれい、です"))
	assert.False(t, IsKanaOnly("食べる"))
	assert.False(t, IsKanaOnly("taberu"))
	assert.False(t, IsKanaOnly(""))
	assert.False(t, IsKanaOnly("、"))
}

func TestContainsKanji(t *testing.T) {
	assert.True(t, ContainsKanji("食べる"))
	assert.True(t, ContainsKanji("元気な"))
	assert.False(t, ContainsKanji("げんきな"))
	assert.False(t, ContainsKanji("genkina"))
}

func TestScriptOf(t *testing.T) {
	assert.Equal(t, ScriptRomanized, ScriptOf("hayai"))
	assert.Equal(t, ScriptKana, ScriptOf("はやい"))
	assert.Equal(t, ScriptMixed, ScriptOf("早い"))
	assert.Equal(t, "kana", ScriptKana.String())
}

func TestKataHiraRoundTrip(t *testing.T) {
	for _, s := range []string{"あいうえお", "きょう", "がっこう", "ゔぁ", "ん", "ぁぃぅぇぉっゃゅょゎ"} {
		assert.Equal(t, s, KataToHira(HiraToKata(s)))
	}
}

func TestKataToHiraKeepsOthers(t *testing.T) {
	assert.Equal(t, "らーめん食べる abc", KataToHira("ラーメン食べる abc"))
	assert.Equal(t, "ラーメン食ベル abc", HiraToKata("らーめん食べる abc"))
	assert.Equal(t, "カ1キ-ク 漢ケ", HiraToKata("か1き-く 漢け"))
	assert.Equal(t, "か1き-く 漢け", KataToHira("カ1キ-ク 漢ケ"))
}

func TestRomanizedToHiraganaBasic(t *testing.T) {
	assert.Equal(t, "たべる", RomanizedToHiragana("taberu"))
	assert.Equal(t, "はやい", RomanizedToHiragana("Hayai"))
	assert.Equal(t, "いい", RomanizedToHiragana("ii"))
	assert.Equal(t, "です", RomanizedToHiragana("desu"))
}

func TestRomanizedToHiraganaDigraphs(t *testing.T) {
	assert.Equal(t, "しゃ", RomanizedToHiragana("sha"))
	assert.Equal(t, "ちゅ", RomanizedToHiragana("chu"))
	assert.Equal(t, "きょう", RomanizedToHiragana("kyou"))
	assert.Equal(t, "あたらしい", RomanizedToHiragana("atarashii"))
	assert.Equal(t, "つかう", RomanizedToHiragana("tsukau"))
}

func TestRomanizedToHiraganaSokuon(t *testing.T) {
	assert.Equal(t, "かっこいい", RomanizedToHiragana("kakkoii"))
	assert.Equal(t, "まっちゃ", RomanizedToHiragana("matcha"))
	assert.Equal(t, "はやかった", RomanizedToHiragana("hayakatta"))
}

func TestRomanizedToHiraganaSyllabicN(t *testing.T) {
	assert.Equal(t, "げんき", RomanizedToHiragana("genki"))
	assert.Equal(t, "おんな", RomanizedToHiragana("onna"))
	assert.Equal(t, "きんえん", RomanizedToHiragana("kin'en"))
	assert.Equal(t, "ほん", RomanizedToHiragana("hon"))
	assert.Equal(t, "しぬ", RomanizedToHiragana("shinu"))
}

func TestRomanizedToHiraganaPassThrough(t *testing.T) {
	assert.Equal(t, "げんき で わ ない", RomanizedToHiragana("genki de wa nai"))
	assert.Equal(t, "た食べる", RomanizedToHiragana("ta食べる"))
	assert.Equal(t, "らーめん", RomanizedToHiragana("ra-men"))
	assert.Equal(t, "x", RomanizedToHiragana("x"))
}

func TestRomanizedToHiraganaIdempotentOnKana(t *testing.T) {
	for _, s := range []string{"たべる", "かっこいい", "しゃしん", "げんきな"} {
		assert.Equal(t, s, RomanizedToHiragana(s))
	}
	assert.Equal(t, "らーめん", RomanizedToHiragana("ラーメン"))
}

func TestKanaToRomanized(t *testing.T) {
	assert.Equal(t, "taberu", KanaToRomanized("たべる"))
	assert.Equal(t, "kyou", KanaToRomanized("きょう"))
	assert.Equal(t, "gakkou", KanaToRomanized("がっこう"))
	assert.Equal(t, "matcha", KanaToRomanized("まっちゃ"))
	assert.Equal(t, "kin'en", KanaToRomanized("きんえん"))
	assert.Equal(t, "genki", KanaToRomanized("げんき"))
	assert.Equal(t, "raamen", KanaToRomanized("ラーメン"))
	assert.Equal(t, "tsukau", KanaToRomanized("つかう"))
}

func TestKanaToRomanizedKeepsOthers(t *testing.T) {
	assert.Equal(t, "tabe食", KanaToRomanized("たべ食"))
	assert.Equal(t, "aっ", KanaToRomanized("あっ"))
}

func TestRomajiRoundTrip(t *testing.T) {
	for _, s := range []string{"hayakunakatta", "kakkoii", "shashin", "kin'en", "jouzu", "ryokou"} {
		assert.Equal(t, s, KanaToRomanized(RomanizedToHiragana(s)))
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "taberu", Normalize("  ＴＡＢＥＲＵ "))
	assert.Equal(t, "ラーメン", Normalize("ﾗｰﾒﾝ"))
	assert.Equal(t, "toukyou", Normalize("Tōkyō"))
	assert.Equal(t, "ookii", Normalize("ookii"))
}
