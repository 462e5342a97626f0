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

package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/czcorpus/hltscl"
	"github.com/czcorpus/katsuyo/cache/backend"
	"github.com/czcorpus/katsuyo/config"
	"github.com/czcorpus/katsuyo/conjugation"
	"github.com/czcorpus/katsuyo/globctx"
	"github.com/czcorpus/katsuyo/reporting"
	"github.com/czcorpus/katsuyo/reverso"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func initEngine(globalCtx *globctx.Context, conf *config.Configuration) http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.GinMiddleware())
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	actions := NewActions(globalCtx, conf.Batch)

	// the endpoint can produce also XML
	engine.GET("/conjugate/:word", actions.Conjugate)

	apiRoutes := engine.Group("/")
	apiRoutes.Use(uniresp.AlwaysJSONContentType())
	apiRoutes.POST("/conjugate", actions.ConjugateBatch)
	apiRoutes.GET("/forms", actions.Forms)
	apiRoutes.GET("/service/ping", actions.Ping)

	return engine
}

func createPGPool(conf hltscl.PgConf) *pgxpool.Pool {
	conn, err := hltscl.CreatePool(conf)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	return conn
}

func CreateTDBWriter(
	ctx context.Context, conf *reporting.Conf, loc *time.Location) (ans reporting.ReportingWriter) {
	if conf != nil {
		pgPool := createPGPool(conf.DB)
		ans = reporting.NewReportingWriter(pgPool, loc, ctx)

	} else {
		ans = &reporting.NullWriter{}
	}
	return
}

// CreateGlobalCtx initializes shared resources: response cache,
// conjugation service with its verb source and reporting.
func CreateGlobalCtx(
	ctx context.Context,
	conf *config.Configuration,
	tDBWriter reporting.ReportingWriter,
) *globctx.Context {
	ans := globctx.NewGlobalContext(ctx)
	tDBWriter.AddTableWriter(reporting.LookupsTable)
	tDBWriter.AddTableWriter(reporting.ServiceTable)

	ans.TimezoneLocation = conf.TimezoneLocation()
	ans.ReportingWriter = tDBWriter
	ans.LookupLogger = globctx.NewLookupLogger(tDBWriter)
	ans.Cache = backend.New(ctx, conf.Cache)
	ans.Conjugator = conjugation.NewService(reverso.NewClient(&conf.Reverso, ans.Cache))
	log.Info().
		Str("baseURL", conf.Reverso.BaseURL).
		Float64("reqPerSec", conf.Reverso.ReqPerSec).
		Msg("configured verb conjugation source")
	return ans
}

// flushPendingWrites waits for queued cache and reporting writes
func flushPendingWrites(ctx context.Context, globalCtx *globctx.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := globalCtx.Cache.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to flush response cache")
		}
	}()
	go func() {
		defer wg.Done()
		if err := globalCtx.ReportingWriter.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to flush lookup reports")
		}
	}()
	wg.Wait()
}

func RunService(conf *config.Configuration) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	tDBWriter := CreateTDBWriter(ctx, conf.Reporting, conf.TimezoneLocation())
	globalCtx := CreateGlobalCtx(ctx, conf, tDBWriter)
	engine := initEngine(globalCtx, conf)

	log.Info().Msgf("starting to listen at %s:%d", conf.ServerHost, conf.ServerPort)
	srv := &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", conf.ServerHost, conf.ServerPort),
		WriteTimeout: time.Duration(conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(conf.ServerReadTimeoutSecs) * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	globalCtx.ReportingWriter.LogErrors()

	<-globalCtx.Done()
	// now let's give subsystems some time to finish running requests
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}
		// no lookups are running now so the pending writes are final
		flushPendingWrites(ctx, globalCtx)
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-ctx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}
