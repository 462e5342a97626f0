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
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/katsuyo/cache"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// operation represents the type of Redis operation to be performed asynchronously
type operation int

const (
	operationSet    operation = 1
	operationExpire operation = 2

	defaultRedisPort     = 6379
	writeChannelCapacity = 100
	keyPrefix            = "katsuyo:cache:"
)

var (
	errWriteQueueFull = errors.New("Redis cache write queue full")
	errCacheClosed    = errors.New("Redis cache closed")
)

// writeQueueItem is a queued Redis write operation
// processed asynchronously by the background writer
type writeQueueItem struct {
	operation operation
	key       string
	value     []byte
}

// Redis implements cache.Cache using Redis as the backing store.
// Writes are performed by a background goroutine so lookups
// never wait for them.
type Redis struct {
	ctx         context.Context
	conf        *cache.Conf
	redisClient *redis.Client
	writeQueue  chan writeQueueItem
	writerDone  chan struct{}
	mu          sync.RWMutex
	closed      bool
}

// enqueue adds a write operation unless the queue is full
// or the cache has been closed
func (rrc *Redis) enqueue(item writeQueueItem) error {
	rrc.mu.RLock()
	defer rrc.mu.RUnlock()
	if rrc.closed {
		return errCacheClosed
	}
	select {
	case rrc.writeQueue <- item:
		return nil
	default:
		return errWriteQueueFull
	}
}

func (rrc *Redis) createCacheID(url string) string {
	return fmt.Sprintf("%s%x", keyPrefix, cache.GenerateCacheID(url))
}

func (rrc *Redis) Get(ctx context.Context, url string) (cache.Entry, error) {
	cacheID := rrc.createCacheID(url)
	val, err := rrc.redisClient.Get(ctx, cacheID).Bytes()
	if err == redis.Nil {
		return cache.Entry{}, cache.ErrCacheMiss

	} else if err != nil {
		return cache.Entry{}, fmt.Errorf("cache access error: %w", err)
	}
	if err := rrc.enqueue(writeQueueItem{operation: operationExpire, key: cacheID}); err != nil {
		log.Error().
			Str("key", cacheID).
			Err(err).
			Msg("failed to set TTL for cache entry")
	}
	var ans cache.Entry
	if err := sonic.Unmarshal(val, &ans); err != nil {
		return cache.Entry{}, fmt.Errorf("cache access error: %w", err)
	}
	return ans, nil
}

func (rrc *Redis) goRunWriter() {
	go func() {
		defer close(rrc.writerDone)
		for item := range rrc.writeQueue {
			switch item.operation {
			case operationExpire:
				_, err := rrc.redisClient.Expire(rrc.ctx, item.key, rrc.conf.TTL()).Result()
				if err != nil {
					log.Error().
						Err(fmt.Errorf("cache access error: %w", err)).
						Str("key", item.key).
						Msg("Redis cache - failed to execute EXPIRE")
				}
			case operationSet:
				_, err := rrc.redisClient.Set(rrc.ctx, item.key, item.value, rrc.conf.TTL()).Result()
				if err != nil {
					log.Error().
						Err(err).
						Str("key", item.key).
						Msg("Redis cache - failed to execute SET")
				}
			default:
				log.Warn().Any("op", item.operation).Msg("unknown operation in Redis cache queue")
			}
		}
		log.Info().Msg("Redis cache writing queue closed")
	}()
}

func (rrc *Redis) Set(ctx context.Context, url string, entry cache.Entry) error {
	if !cache.ShouldWriteToCache(entry) {
		return nil
	}
	data, err := sonic.Marshal(&entry)
	if err != nil {
		return err
	}
	return rrc.enqueue(writeQueueItem{
		operation: operationSet,
		key:       rrc.createCacheID(url),
		value:     data,
	})
}

// Close stops accepting writes and waits for the queued ones
// to be sent to Redis (or for ctx to expire).
func (rrc *Redis) Close(ctx context.Context) error {
	rrc.mu.Lock()
	if rrc.closed {
		rrc.mu.Unlock()
		return nil
	}
	rrc.closed = true
	close(rrc.writeQueue)
	rrc.mu.Unlock()
	select {
	case <-rrc.writerDone:
	case <-ctx.Done():
		return ctx.Err()
	}
	return rrc.redisClient.Close()
}

// NewRedisCache creates a new Redis cache instance and starts a background
// goroutine for processing asynchronous write operations. The goroutine
// runs until Close is called, cancelling ctx does not interrupt
// pending writes.
func NewRedisCache(ctx context.Context, conf *cache.Conf) *Redis {
	addr := conf.RedisAddr
	if !strings.Contains(addr, ":") {
		addr = fmt.Sprintf("%s:%d", addr, defaultRedisPort)
		log.Warn().Msgf("Caching: Redis port not specified, using %d", defaultRedisPort)
	}
	ans := &Redis{
		ctx:  context.WithoutCancel(ctx),
		conf: conf,
		redisClient: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   conf.RedisDB,
		}),
		writeQueue: make(chan writeQueueItem, writeChannelCapacity),
		writerDone: make(chan struct{}),
	}
	ans.goRunWriter()
	return ans
}
