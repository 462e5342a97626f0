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

// Package verb assembles verb conjugation tables from markup fragments
// provided by an external conjugation source.
package verb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/czcorpus/katsuyo/classify"
	"github.com/czcorpus/katsuyo/forms"
	"github.com/czcorpus/katsuyo/furigana"
	"github.com/rs/zerolog/log"
)

// LabelMap maps tense labels used by the conjugation source
// to form keys. Labels not listed here are ignored.
var LabelMap = map[string]forms.Key{
	"Present Positive Informal":     forms.Plain,
	"Present Positive Formal":       forms.Polite,
	"Present Negative Informal":     forms.Negative,
	"Present Negative Formal":       forms.PoliteNegative,
	"Past Positive Informal":        forms.Past,
	"Past Positive Formal":          forms.PolitePast,
	"Past Negative Informal":        forms.PastNegative,
	"Past Negative Formal":          forms.PolitePastNegative,
	"Te Form Positive Informal":     forms.TeForm,
	"Potential Positive Informal":   forms.Potential,
	"Passive Positive Informal":     forms.Passive,
	"Causative Positive Informal":   forms.Causative,
	"Conditional Positive Informal": forms.Conditional,
	"Volitional Positive Informal":  forms.Volitional,
	"Imperative Positive Informal":  forms.Imperative,
}

// LookupLabel finds a form key for a tense label. Differences
// in whitespace are ignored.
func LookupLabel(label string) (forms.Key, bool) {
	k, ok := LabelMap[strings.Join(strings.Fields(label), " ")]
	return k, ok
}

// Fragment is a markup of a single tense along with
// its romanized variant (if provided by the source)
type Fragment struct {
	Markup furigana.Node
	Romaji string
}

// Page contains fragments of a fetched verb page keyed by tense labels
type Page map[string]Fragment

// Fetcher obtains a page with verb forms for a query (typically
// a romanized verb).
type Fetcher interface {
	FetchVerbMarkup(ctx context.Context, query string) (Page, error)
}

// Assemble creates a conjugation table out of a fetched page. Forms
// without extractable text are marked as not available. If no form
// can be obtained at all, NotFoundError is returned.
func Assemble(query string, page Page) (forms.Table, error) {
	ans := forms.NewTable()
	var numFound int
	for label, frag := range page {
		key, ok := LookupLabel(label)
		if !ok {
			continue
		}
		reading, ok := furigana.Extract(frag.Markup, frag.Romaji)
		if !ok {
			log.Debug().
				Str("query", query).
				Str("label", label).
				Msg("no reading found for verb form")
			continue
		}
		ans[key] = forms.Available(reading, strings.TrimSpace(frag.Romaji))
		numFound++
	}
	if numFound == 0 {
		return nil, &forms.NotFoundError{Query: query}
	}
	return ans, nil
}

// Conjugator produces tables of verb candidates
// using a provided Fetcher.
type Conjugator struct {
	fetcher Fetcher
}

func (c *Conjugator) Conjugate(ctx context.Context, v classify.Variant) (forms.Table, error) {
	if v.Kind != classify.KindVerbCandidate {
		return nil, fmt.Errorf("cannot conjugate '%s' as a verb (class %s)", v.Word, v.Kind)
	}
	page, err := c.fetcher.FetchVerbMarkup(ctx, v.Query)
	if err != nil {
		var fErr *forms.FetchError
		var nfErr *forms.NotFoundError
		if errors.As(err, &fErr) || errors.As(err, &nfErr) {
			return nil, err
		}
		return nil, &forms.FetchError{Query: v.Query, Err: err}
	}
	return Assemble(v.Query, page)
}

func NewConjugator(fetcher Fetcher) *Conjugator {
	return &Conjugator{fetcher: fetcher}
}
