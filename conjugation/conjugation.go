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

// Package conjugation is the main entry point of the conjugation
// pipeline: a word is classified and then conjugated either by local
// adjective rules or by assembling verb forms from an external source.
package conjugation

import (
	"context"
	"errors"

	"github.com/czcorpus/katsuyo/adjective"
	"github.com/czcorpus/katsuyo/classify"
	"github.com/czcorpus/katsuyo/forms"
	"github.com/czcorpus/katsuyo/verb"
	"github.com/czcorpus/katsuyo/word"
)

var errNoVerbSource = errors.New("no verb conjugation source configured")

// Result is an outcome of a single lookup
type Result struct {
	Word  word.Word
	Class classify.Kind
	Table forms.Table
}

// Service conjugates words. It has no mutable state
// and it can be used concurrently.
type Service struct {
	verbs *verb.Conjugator
}

// Conjugate creates a complete table of forms for the raw word.
// Possible errors are *forms.ClassificationError, *forms.FetchError
// and *forms.NotFoundError.
func (s *Service) Conjugate(ctx context.Context, raw string) (Result, error) {
	w := word.New(raw)
	variant := classify.Classify(w)
	ans := Result{Word: w, Class: variant.Kind}
	switch {
	case variant.Kind.IsAdjective():
		tab, err := adjective.Conjugate(variant)
		if err != nil {
			return Result{}, err
		}
		ans.Table = tab
	case variant.Kind == classify.KindVerbCandidate:
		if s.verbs == nil {
			return Result{}, &forms.FetchError{Query: variant.Query, Err: errNoVerbSource}
		}
		tab, err := s.verbs.Conjugate(ctx, variant)
		if err != nil {
			return Result{}, err
		}
		ans.Table = tab
	default:
		return Result{}, &forms.ClassificationError{Word: w.Text}
	}
	return ans, nil
}

// NewService creates a conjugation service. The fetcher may be nil
// in which case only adjectives can be conjugated.
func NewService(fetcher verb.Fetcher) *Service {
	ans := &Service{}
	if fetcher != nil {
		ans.verbs = verb.NewConjugator(fetcher)
	}
	return ans
}
