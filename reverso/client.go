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

// Package reverso fetches verb conjugations from the Reverso
// conjugator web pages.
package reverso

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/czcorpus/katsuyo/cache"
	"github.com/czcorpus/katsuyo/forms"
	"github.com/czcorpus/katsuyo/verb"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	verbURLPathTemplate = "/conjugation-japanese-verb-%s.html"
	maxResponseBytes    = 4 * 1024 * 1024
)

// Client obtains verb pages from the conjugator. Outgoing requests
// are rate limited and successful responses are cached.
// It implements verb.Fetcher.
type Client struct {
	conf       *Conf
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.Cache
}

func (c *Client) verbURL(query string) string {
	return strings.TrimRight(c.conf.BaseURL, "/") +
		fmt.Sprintf(verbURLPathTemplate, url.PathEscape(query))
}

func (c *Client) fetch(ctx context.Context, targetURL string) (cache.Entry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return cache.Entry{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return cache.Entry{}, err
	}
	req.Header.Set("User-Agent", c.conf.ClientUserAgent)
	t0 := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cache.Entry{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return cache.Entry{}, err
	}
	log.Debug().
		Str("url", targetURL).
		Int("status", resp.StatusCode).
		Dur("procTime", time.Since(t0)).
		Msg("fetched conjugator page")
	return cache.Entry{Status: resp.StatusCode, Body: body, Created: time.Now()}, nil
}

func (c *Client) getPage(ctx context.Context, targetURL string) (cache.Entry, error) {
	entry, err := c.cache.Get(ctx, targetURL)
	if err == nil {
		log.Debug().Str("url", targetURL).Msg("using cached conjugator page")
		return entry, nil

	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Error().Err(err).Str("url", targetURL).Msg("failed to read from cache, ignoring")
	}
	entry, err = c.fetch(ctx, targetURL)
	if err != nil {
		return entry, err
	}
	if err := c.cache.Set(ctx, targetURL, entry); err != nil {
		log.Error().Err(err).Str("url", targetURL).Msg("failed to store conjugator page to cache")
	}
	return entry, nil
}

// FetchVerbMarkup downloads and parses a conjugation page of a verb.
// A missing page is reported as forms.NotFoundError, any other failure
// as forms.FetchError.
func (c *Client) FetchVerbMarkup(ctx context.Context, query string) (verb.Page, error) {
	entry, err := c.getPage(ctx, c.verbURL(query))
	if err != nil {
		return nil, &forms.FetchError{Query: query, Err: err}
	}
	if entry.Status == http.StatusNotFound {
		return nil, &forms.NotFoundError{Query: query}
	}
	if entry.Status != http.StatusOK {
		return nil, &forms.FetchError{
			Query: query,
			Err:   fmt.Errorf("unexpected response status %d", entry.Status),
		}
	}
	page, err := ParsePage(string(entry.Body))
	if err != nil {
		return nil, &forms.FetchError{Query: query, Err: fmt.Errorf("failed to parse page: %w", err)}
	}
	return page, nil
}

// NewClient creates a conjugator client. The cache argument must
// not be nil (use a null cache to disable caching).
func NewClient(conf *Conf, c cache.Cache) *Client {
	limit := rate.Inf
	if conf.ReqPerSec > 0 {
		limit = rate.Limit(conf.ReqPerSec)
	}
	return &Client{
		conf:       conf,
		httpClient: &http.Client{Timeout: conf.Timeout()},
		limiter:    rate.NewLimiter(limit, max(conf.Burst, 1)),
		cache:      c,
	}
}
