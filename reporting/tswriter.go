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


package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/czcorpus/hltscl"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	dbWriteTimeout     = 10 * time.Second
	tableQueueCapacity = 200
)

// tableQueue buffers records of a single table. Records are handed
// to send in the order they were written until the queue is closed.
type tableQueue struct {
	items chan Timescalable
	done  chan struct{}
}

func (q *tableQueue) close() {
	close(q.items)
}

func newTableQueue(capacity int, send func(item Timescalable)) *tableQueue {
	q := &tableQueue{
		items: make(chan Timescalable, capacity),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(q.done)
		for item := range q.items {
			send(item)
		}
	}()
	return q
}

type Table struct {
	writer    *hltscl.TableWriter
	opsDataCh chan<- hltscl.Entry
	errCh     <-chan hltscl.WriteError
	queue     *tableQueue
}

// TimescaleDBWriter writes lookup and service records to TimescaleDB
// tables. Each table is handled by its own asynchronous writer which
// keeps running after the service context ends until Close flushes
// the pending records.
type TimescaleDBWriter struct {
	ctx    context.Context
	cancel context.CancelFunc
	tz     *time.Location
	conn   *pgxpool.Pool
	tables map[string]*Table
	mu     sync.RWMutex
	closed bool
}

func (sw *TimescaleDBWriter) LogErrors() {
	for name, table := range sw.tables {
		if table.errCh == nil {
			continue
		}
		go func(name string, table *Table) {
			for {
				select {
				case <-sw.ctx.Done():
					log.Info().Msgf("about to close %s status writer", name)
					return
				case err, ok := <-table.errCh:
					if ok {
						log.Error().
							Err(err.Err).
							Str("entry", err.Entry.String()).
							Str("table", name).
							Msg("error writing lookup record to TimescaleDB")
					}
				}
			}
		}(name, table)
	}
}

func (sw *TimescaleDBWriter) Write(item Timescalable) {
	sw.mu.RLock()
	defer sw.mu.RUnlock()
	if sw.closed {
		log.Warn().Str("table", item.GetTableName()).Msg("reporting writer closed, record dropped")
		return
	}
	table, ok := sw.tables[item.GetTableName()]
	if !ok {
		log.Warn().Str("table_name", item.GetTableName()).Msg("Undefined table name in writer")
		return
	}
	table.queue.items <- item
}

// Close stops accepting new records and waits until all the queued
// ones are passed to the table writers. The writers are stopped
// afterwards even if ctx expires first.
func (sw *TimescaleDBWriter) Close(ctx context.Context) error {
	sw.mu.Lock()
	if sw.closed {
		sw.mu.Unlock()
		return nil
	}
	sw.closed = true
	sw.mu.Unlock()
	defer sw.cancel()

	for _, table := range sw.tables {
		table.queue.close()
	}
	for name, table := range sw.tables {
		select {
		case <-table.queue.done:
			log.Debug().Str("table", name).Msg("flushed pending reporting records")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (sw *TimescaleDBWriter) AddTableWriter(tableName string) {
	twriter := hltscl.NewTableWriter(sw.conn, tableName, "time", sw.tz)
	opsDataCh, errCh := twriter.Activate(
		sw.ctx, hltscl.WithTimeout(dbWriteTimeout))
	table := &Table{
		writer:    twriter,
		opsDataCh: opsDataCh,
		errCh:     errCh,
	}
	table.queue = newTableQueue(tableQueueCapacity, func(item Timescalable) {
		log.Debug().
			Float64("timeout", twriter.CurrentQueryTimeout().Seconds()).
			Str("table", tableName).
			Msg("writing record to TimescaleDB")
		opsDataCh <- *item.ToTimescaleDB(twriter)
	})
	sw.tables[tableName] = table
}

func newTimescaleDBWriter(ctx context.Context, tz *time.Location, conn *pgxpool.Pool) *TimescaleDBWriter {
	wCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	return &TimescaleDBWriter{
		ctx:    wCtx,
		cancel: cancel,
		tz:     tz,
		conn:   conn,
		tables: make(map[string]*Table),
	}
}

func NewReportingWriter(connection *pgxpool.Pool, tz *time.Location, ctx context.Context) *TimescaleDBWriter {
	return newTimescaleDBWriter(ctx, tz, connection)
}
