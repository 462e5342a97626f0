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

package backend

import (
	"context"

	"github.com/czcorpus/katsuyo/cache"
)

type NullCache struct{}

func (rc *NullCache) Get(ctx context.Context, url string) (cache.Entry, error) {
	return cache.Entry{}, cache.ErrCacheMiss
}

func (rc *NullCache) Set(ctx context.Context, url string, entry cache.Entry) error {
	return nil
}

func (rc *NullCache) Close(ctx context.Context) error {
	return nil
}

func NewNullCache() *NullCache {
	return &NullCache{}
}
