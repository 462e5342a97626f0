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

package cache

import (
	"context"
	"crypto/sha1"
	"errors"
	"net/http"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// Entry is a cached response of an external service
type Entry struct {
	Status  int       `json:"status"`
	Body    []byte    `json:"body"`
	Created time.Time `json:"created"`
}

// Cache stores responses of external services keyed by their URLs
type Cache interface {
	Get(ctx context.Context, url string) (Entry, error)
	Set(ctx context.Context, url string, entry Entry) error

	// Close finishes pending writes. The cache must not
	// be used after the call.
	Close(ctx context.Context) error
}

// GenerateCacheID creates a storage independent ID of a cached URL
func GenerateCacheID(url string) []byte {
	h := sha1.New()
	h.Write([]byte(url))
	return h.Sum(nil)
}

// ShouldWriteToCache tests whether an entry is worth storing.
// Only successful responses are cached.
func ShouldWriteToCache(entry Entry) bool {
	return entry.Status == http.StatusOK && len(entry.Body) > 0
}

type Conf struct {
	FileRootPath string `json:"fileRootPath"`
	RedisAddr    string `json:"redisAddr"`
	RedisDB      int    `json:"redisDB"`
	TTLSecs      int    `json:"ttlSecs"`
}

func (conf *Conf) Validate(context string) error {
	if conf.FileRootPath != "" && conf.RedisAddr != "" {
		return errors.New(context + ": only one of fileRootPath, redisAddr can be set")
	}
	if conf.TTLSecs < 0 {
		return errors.New(context + ".ttlSecs must be a non-negative number")
	}
	return nil
}

func (conf *Conf) TTL() time.Duration {
	return time.Duration(conf.TTLSecs) * time.Second
}
