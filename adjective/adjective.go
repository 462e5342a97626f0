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

// Package adjective generates conjugation tables of i- and na-adjectives.
package adjective

import (
	"fmt"

	"github.com/czcorpus/katsuyo/classify"
	"github.com/czcorpus/katsuyo/forms"
)

// suffix is an ending attached to a stem, in both scripts
type suffix struct {
	romaji string
	kana   string
}

func (s suffix) join(other suffix) suffix {
	return suffix{romaji: s.romaji + other.romaji, kana: s.kana + other.kana}
}

// plainKeys are the forms derived directly from a stem.
// The remaining non-verb forms are their polite counterparts.
var plainKeys = []forms.Key{
	forms.Plain, forms.Negative, forms.Past, forms.PastNegative, forms.TeForm,
}

var politeOf = map[forms.Key]forms.Key{
	forms.Plain:        forms.Polite,
	forms.Negative:     forms.PoliteNegative,
	forms.Past:         forms.PolitePast,
	forms.PastNegative: forms.PolitePastNegative,
}

var politeCopula = suffix{romaji: " desu", kana: "です"}

type paradigm struct {
	plain map[forms.Key]suffix

	// polite derives a polite ending from the plain one
	polite func(key forms.Key, plain suffix) suffix
}

func appendCopula(_ forms.Key, plain suffix) suffix {
	return plain.join(politeCopula)
}

var iParadigm = paradigm{
	plain: map[forms.Key]suffix{
		forms.Plain:        {"i", "い"},
		forms.Negative:     {"kunai", "くない"},
		forms.Past:         {"katta", "かった"},
		forms.PastNegative: {"kunakatta", "くなかった"},
		forms.TeForm:       {"kute", "くて"},
	},
	polite: appendCopula,
}

// iiParadigm covers "ii" and its compounds; all the forms
// except for the plain one are built from "yoi".
var iiParadigm = paradigm{
	plain: map[forms.Key]suffix{
		forms.Plain:        {"ii", "いい"},
		forms.Negative:     {"yokunai", "よくない"},
		forms.Past:         {"yokatta", "よかった"},
		forms.PastNegative: {"yokunakatta", "よくなかった"},
		forms.TeForm:       {"yokute", "よくて"},
	},
	polite: appendCopula,
}

var naPoliteCopula = map[forms.Key]suffix{
	forms.Plain:        {"desu", "です"},
	forms.Negative:     {"de wa arimasen", "ではありません"},
	forms.Past:         {"deshita", "でした"},
	forms.PastNegative: {"de wa arimasen deshita", "ではありませんでした"},
}

var naParadigm = paradigm{
	plain: map[forms.Key]suffix{
		forms.Plain:        {"da", "だ"},
		forms.Negative:     {"de wa nai", "ではない"},
		forms.Past:         {"datta", "だった"},
		forms.PastNegative: {"de wa nakatta", "ではなかった"},
		forms.TeForm:       {"de", "で"},
	},
	polite: func(key forms.Key, _ suffix) suffix {
		return naPoliteCopula[key]
	},
}

func paradigmOf(kind classify.Kind) (paradigm, bool) {
	switch kind {
	case classify.KindPlainI:
		return iParadigm, true
	case classify.KindIrregularIi, classify.KindCompoundIi:
		return iiParadigm, true
	case classify.KindNa:
		return naParadigm, true
	}
	return paradigm{}, false
}

func newForm(v classify.Variant, s suffix) forms.Form {
	var romaji string
	if v.HasRomaji {
		romaji = v.Stem + s.romaji
	}
	return forms.Available(v.KanaStem+s.kana, romaji)
}

// Conjugate creates a complete table of forms for an adjective variant.
// Verb-only forms are set as not applicable. If the word has no romanized
// view, romaji values of the forms are left empty.
func Conjugate(v classify.Variant) (forms.Table, error) {
	p, ok := paradigmOf(v.Kind)
	if !ok {
		return nil, fmt.Errorf("cannot conjugate '%s' as an adjective (class %s)", v.Word, v.Kind)
	}
	ans := forms.NewTable()
	for _, k := range plainKeys {
		plain := p.plain[k]
		ans[k] = newForm(v, plain)
		if pk, ok := politeOf[k]; ok {
			ans[pk] = newForm(v, p.polite(k, plain))
		}
	}
	for _, k := range forms.Keys() {
		if k.VerbOnly() {
			ans[k] = forms.NotApplicable()
		}
	}
	return ans, nil
}
