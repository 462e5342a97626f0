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

// Package backend contains storage implementations of cache.Cache
package backend

import (
	"context"

	"github.com/czcorpus/katsuyo/cache"
	"github.com/rs/zerolog/log"
)

// New creates a cache based on the configuration. With no storage
// configured (or with zero TTL), a cache which stores nothing is used.
func New(ctx context.Context, conf *cache.Conf) cache.Cache {
	if conf == nil || conf.TTLSecs == 0 {
		log.Info().Msg("no cache configured for external responses")
		return NewNullCache()
	}
	if conf.FileRootPath != "" {
		log.Info().
			Str("path", conf.FileRootPath).
			Int("ttlSecs", conf.TTLSecs).
			Msg("using file cache for external responses")
		return NewFileCache(conf)
	}
	if conf.RedisAddr != "" {
		log.Info().
			Str("address", conf.RedisAddr).
			Int("db", conf.RedisDB).
			Int("ttlSecs", conf.TTLSecs).
			Msg("using Redis cache for external responses")
		return NewRedisCache(ctx, conf)
	}
	log.Info().Msg("no cache configured for external responses")
	return NewNullCache()
}
