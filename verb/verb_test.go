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

package verb

import (
	"context"
	"errors"
	"testing"

	"github.com/czcorpus/katsuyo/classify"
	"github.com/czcorpus/katsuyo/forms"
	"github.com/czcorpus/katsuyo/furigana"
	"github.com/czcorpus/katsuyo/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	page    Page
	err     error
	queries []string
}

func (f *fakeFetcher) FetchVerbMarkup(ctx context.Context, query string) (Page, error) {
	f.queries = append(f.queries, query)
	return f.page, f.err
}

func taberuPage() Page {
	return Page{
		"Present Positive Informal": {
			Markup: furigana.NewElement(furigana.NewRuby("食", "た"), furigana.NewText("べる")),
			Romaji: "taberu",
		},
		"Present  Positive Formal": {
			Markup: furigana.NewElement(furigana.NewRuby("食", "た"), furigana.NewText("べます")),
			Romaji: "tabemasu",
		},
		"Te Form Positive Informal": {
			Markup: furigana.NewElement(furigana.NewRubyBase("タ"), furigana.NewText("べて")),
		},
		"Past Negative Formal": {
			Romaji: "tabemasen deshita",
		},
		"Imperative Positive Informal": {
			Markup: furigana.NewElement(furigana.Ruby{}),
		},
		"Provisional Positive Informal": {
			Markup: furigana.NewText("たべれば"),
		},
	}
}

func TestLabelMapComplete(t *testing.T) {
	assert.Len(t, LabelMap, forms.NumKeys)
	seen := make(map[forms.Key]bool)
	for _, k := range LabelMap {
		seen[k] = true
	}
	assert.Len(t, seen, forms.NumKeys)
}

func TestAssemble(t *testing.T) {
	tab, err := Assemble("taberu", taberuPage())
	require.NoError(t, err)
	assert.True(t, tab.Complete())
	assert.Equal(t, "たべる", tab[forms.Plain].Kana)
	assert.Equal(t, "taberu", tab[forms.Plain].Romaji)
	assert.Equal(t, "たべます", tab[forms.Polite].Kana)
	assert.Equal(t, "たべて", tab[forms.TeForm].Kana)
	assert.False(t, tab[forms.TeForm].HasRomaji())
	assert.Equal(t, "たべませんでした", tab[forms.PolitePastNegative].Kana)
	assert.Equal(t, forms.StatusNotAvailable, tab[forms.Imperative].Status)
	assert.Equal(t, forms.StatusNotAvailable, tab[forms.Potential].Status)
	assert.Equal(t, 4, tab.NumAvailable())
}

func TestAssembleNothingRecognized(t *testing.T) {
	_, err := Assemble("xyzru", Page{"Provisional Positive Informal": {Romaji: "xyz"}})
	var nfErr *forms.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "xyzru", nfErr.Query)

	_, err = Assemble("xyzru", Page{})
	assert.True(t, errors.As(err, &nfErr))
}

func TestConjugatorConjugate(t *testing.T) {
	f := &fakeFetcher{page: taberuPage()}
	c := NewConjugator(f)
	tab, err := c.Conjugate(context.Background(), classify.Classify(word.New("たべる")))
	require.NoError(t, err)
	assert.Equal(t, []string{"taberu"}, f.queries)
	assert.Equal(t, "たべる", tab[forms.Plain].Kana)
}

func TestConjugatorFetchError(t *testing.T) {
	cause := errors.New("connection reset")
	c := NewConjugator(&fakeFetcher{err: cause})
	_, err := c.Conjugate(context.Background(), classify.Classify(word.New("taberu")))
	var fErr *forms.FetchError
	require.True(t, errors.As(err, &fErr))
	assert.Equal(t, "taberu", fErr.Query)
	assert.ErrorIs(t, err, cause)

	var nfErr *forms.NotFoundError
	assert.False(t, errors.As(err, &nfErr))
}

func TestConjugatorRejectsAdjective(t *testing.T) {
	f := &fakeFetcher{page: taberuPage()}
	_, err := NewConjugator(f).Conjugate(context.Background(), classify.Classify(word.New("hayai")))
	assert.Error(t, err)
	assert.Empty(t, f.queries)
}
