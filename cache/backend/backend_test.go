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
	"os"
	"testing"
	"time"

	"github.com/czcorpus/katsuyo/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://conjugator.example.com/conjugation-japanese-verb-taberu.html"

func TestFileCacheRoundTrip(t *testing.T) {
	conf := &cache.Conf{FileRootPath: t.TempDir(), TTLSecs: 60}
	fc := NewFileCache(conf)
	_, err := fc.Get(context.Background(), testURL)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	entry := cache.Entry{Status: 200, Body: []byte("<html>たべる</html>"), Created: time.Now()}
	require.NoError(t, fc.Set(context.Background(), testURL, entry))

	ans, err := fc.Get(context.Background(), testURL)
	require.NoError(t, err)
	assert.Equal(t, 200, ans.Status)
	assert.Equal(t, "<html>たべる</html>", string(ans.Body))
}

func TestFileCacheExpired(t *testing.T) {
	conf := &cache.Conf{FileRootPath: t.TempDir(), TTLSecs: 60}
	fc := NewFileCache(conf)
	entry := cache.Entry{Status: 200, Body: []byte("data")}
	require.NoError(t, fc.Set(context.Background(), testURL, entry))

	itemPath := fc.createItemPath(testURL)
	past := time.Now().Add(-2 * time.Minute)
	require.NoError(t, os.Chtimes(itemPath, past, past))

	_, err := fc.Get(context.Background(), testURL)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = os.Stat(itemPath)
	assert.True(t, os.IsNotExist(err))
}

func TestFileCacheSkipsFailedResponses(t *testing.T) {
	conf := &cache.Conf{FileRootPath: t.TempDir(), TTLSecs: 60}
	fc := NewFileCache(conf)
	require.NoError(t, fc.Set(context.Background(), testURL, cache.Entry{Status: 503, Body: []byte("x")}))
	_, err := fc.Get(context.Background(), testURL)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestNullCache(t *testing.T) {
	nc := NewNullCache()
	assert.NoError(t, nc.Set(context.Background(), testURL, cache.Entry{Status: 200, Body: []byte("x")}))
	_, err := nc.Get(context.Background(), testURL)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestNewSelectsBackend(t *testing.T) {
	assert.IsType(t, &NullCache{}, New(context.Background(), nil))
	assert.IsType(t, &NullCache{}, New(context.Background(), &cache.Conf{FileRootPath: "/tmp"}))
	assert.IsType(t, &File{}, New(context.Background(), &cache.Conf{FileRootPath: t.TempDir(), TTLSecs: 10}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rc := New(ctx, &cache.Conf{RedisAddr: "localhost", TTLSecs: 10})
	assert.IsType(t, &Redis{}, rc)
	assert.NoError(t, rc.Close(context.Background()))
}

func TestRedisCacheCloseDrainsQueue(t *testing.T) {
	srvCtx, cancel := context.WithCancel(context.Background())
	rc := NewRedisCache(srvCtx, &cache.Conf{RedisAddr: "127.0.0.1:1", TTLSecs: 10})
	require.NoError(t, rc.Set(srvCtx, testURL, cache.Entry{Status: 200, Body: []byte("x")}))
	// the service context ending must not stop pending writes
	cancel()
	assert.NoError(t, rc.ctx.Err())

	ctx, cancelClose := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelClose()
	require.NoError(t, rc.Close(ctx))
	assert.Empty(t, rc.writeQueue)
	assert.ErrorIs(
		t,
		rc.Set(context.Background(), testURL, cache.Entry{Status: 200, Body: []byte("x")}),
		errCacheClosed,
	)
	assert.NoError(t, rc.Close(ctx))
}

func TestSyncBackendsClose(t *testing.T) {
	assert.NoError(t, NewNullCache().Close(context.Background()))
	fc := NewFileCache(&cache.Conf{FileRootPath: t.TempDir(), TTLSecs: 60})
	assert.NoError(t, fc.Close(context.Background()))
}
