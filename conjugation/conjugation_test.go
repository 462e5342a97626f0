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

package conjugation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/czcorpus/katsuyo/classify"
	"github.com/czcorpus/katsuyo/forms"
	"github.com/czcorpus/katsuyo/furigana"
	"github.com/czcorpus/katsuyo/verb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]verb.Page
}

func (f *fakeFetcher) FetchVerbMarkup(ctx context.Context, query string) (verb.Page, error) {
	if p, ok := f.pages[query]; ok {
		return p, nil
	}
	if query == "kowareru" {
		return nil, errors.New("service unavailable")
	}
	return verb.Page{}, nil
}

func newTestService() *Service {
	return NewService(&fakeFetcher{
		pages: map[string]verb.Page{
			"taberu": {
				"Present Positive Informal": {
					Markup: furigana.NewElement(furigana.NewRuby("食", "た"), furigana.NewText("べる")),
					Romaji: "taberu",
				},
				"Volitional Positive Informal": {Romaji: "tabeyou"},
			},
		},
	})
}

func TestConjugateAdjective(t *testing.T) {
	ans, err := newTestService().Conjugate(context.Background(), "hayai")
	require.NoError(t, err)
	assert.Equal(t, classify.KindPlainI, ans.Class)
	assert.Equal(t, "hayai", ans.Word.Text)
	assert.True(t, ans.Table.Complete())
	assert.Equal(t, "hayakunai", ans.Table[forms.Negative].Romaji)
	assert.Equal(t, forms.StatusNotApplicable, ans.Table[forms.Imperative].Status)
}

func TestConjugateVerb(t *testing.T) {
	ans, err := newTestService().Conjugate(context.Background(), "taberu")
	require.NoError(t, err)
	assert.Equal(t, classify.KindVerbCandidate, ans.Class)
	assert.True(t, ans.Table.Complete())
	assert.Equal(t, "たべる", ans.Table[forms.Plain].Kana)
	assert.Equal(t, "たべよう", ans.Table[forms.Volitional].Kana)
	assert.Equal(t, forms.StatusNotAvailable, ans.Table[forms.Passive].Status)
}

func TestConjugateUnrecognized(t *testing.T) {
	_, err := newTestService().Conjugate(context.Background(), "xyz")
	var cErr *forms.ClassificationError
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, "xyz", cErr.Word)
}

func TestConjugateVerbNotFound(t *testing.T) {
	_, err := newTestService().Conjugate(context.Background(), "nanika suru")
	var nfErr *forms.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
}

func TestConjugateVerbFetchFailure(t *testing.T) {
	_, err := newTestService().Conjugate(context.Background(), "kowareru")
	var fErr *forms.FetchError
	assert.True(t, errors.As(err, &fErr))
	var nfErr *forms.NotFoundError
	assert.False(t, errors.As(err, &nfErr))
}

func TestConjugateWithoutVerbSource(t *testing.T) {
	s := NewService(nil)
	_, err := s.Conjugate(context.Background(), "taberu")
	var fErr *forms.FetchError
	assert.True(t, errors.As(err, &fErr))

	ans, err := s.Conjugate(context.Background(), "genkina")
	assert.NoError(t, err)
	assert.Equal(t, "genkidesu", ans.Table[forms.Polite].Romaji)
}

func TestConjugateConcurrent(t *testing.T) {
	s := newTestService()
	words := []string{"hayai", "ii", "kakkoii", "genkina", "taberu", "atarashii"}
	var wg sync.WaitGroup
	errs := make([]error, len(words)*10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ans, err := s.Conjugate(context.Background(), words[i%len(words)])
			if err == nil && !ans.Table.Complete() {
				err = fmt.Errorf("incomplete table for %s", words[i%len(words)])
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}
