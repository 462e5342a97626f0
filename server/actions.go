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
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/czcorpus/katsuyo/config"
	"github.com/czcorpus/katsuyo/conjugation"
	"github.com/czcorpus/katsuyo/forms"
	"github.com/czcorpus/katsuyo/globctx"
	"github.com/czcorpus/katsuyo/render"
	"github.com/czcorpus/katsuyo/reporting"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	formatJSON = "json"
	formatXML  = "xml"
)

// StatusForError maps lookup errors to HTTP status codes
func StatusForError(err error) int {
	var cErr *forms.ClassificationError
	var nfErr *forms.NotFoundError
	var fErr *forms.FetchError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &cErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &nfErr):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &fErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

type formInfo struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	VerbOnly bool   `json:"verbOnly"`
}

type batchRequest struct {
	Words []string `json:"words"`
}

type batchItem struct {
	Word   string               `json:"word"`
	Status int                  `json:"status"`
	Result *render.JSONDocument `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

type batchResponse struct {
	Items []batchItem `json:"items"`
}

// Actions contains HTTP handlers of conjugation lookups
type Actions struct {
	globalCtx *globctx.Context
	batchConf config.BatchConf
}

func (a *Actions) lookup(req *http.Request, word string, isBatch bool) (conjugation.Result, error) {
	t0 := time.Now()
	res, err := a.globalCtx.Conjugator.Conjugate(req.Context(), word)
	a.globalCtx.LookupLogger.Log(req, word, res, StatusForError(err), time.Since(t0), isBatch, err)
	return res, err
}

func newJSONDocument(word string, res conjugation.Result) *render.JSONDocument {
	doc := render.NewJSONDocument(word, res.Table)
	doc.Class = res.Class.String()
	return &doc
}

// Conjugate handles a lookup of a single word. Supported formats
// are "json" (default) and "xml".
func (a *Actions) Conjugate(ctx *gin.Context) {
	word := strings.TrimSpace(ctx.Param("word"))
	format := ctx.DefaultQuery("format", formatJSON)
	if format != formatJSON && format != formatXML {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError(fmt.Sprintf("unsupported format '%s'", format)),
			http.StatusBadRequest,
		)
		return
	}
	if word == "" {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("empty word"), http.StatusBadRequest)
		return
	}
	res, err := a.lookup(ctx.Request, word, false)
	if err != nil {
		uniresp.WriteJSONErrorResponse(ctx.Writer, uniresp.NewActionErrorFrom(err), StatusForError(err))
		return
	}
	if format == formatXML {
		data, err := render.XML(word, res.Table)
		if err != nil {
			uniresp.WriteJSONErrorResponse(
				ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
			return
		}
		ctx.Writer.Header().Set("Content-Type", "application/xml; charset=utf-8")
		ctx.Writer.WriteHeader(http.StatusOK)
		ctx.Writer.Write(data)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, newJSONDocument(word, res))
}

// ConjugateBatch handles lookups of multiple words. Failures of
// individual words are reported per item and they do not affect
// other items.
func (a *Actions) ConjugateBatch(ctx *gin.Context) {
	rawData, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusBadRequest)
		return
	}
	var args batchRequest
	if err := sonic.Unmarshal(rawData, &args); err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusBadRequest)
		return
	}
	if len(args.Words) == 0 {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("no words specified"), http.StatusBadRequest)
		return
	}
	if len(args.Words) > a.batchConf.MaxWords {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError(fmt.Sprintf("too many words (max. %d)", a.batchConf.MaxWords)),
			http.StatusRequestEntityTooLarge,
		)
		return
	}
	ans := batchResponse{Items: make([]batchItem, len(args.Words))}
	var eg errgroup.Group
	eg.SetLimit(max(a.batchConf.Concurrency, 1))
	for i, word := range args.Words {
		i, word := i, word
		eg.Go(func() error {
			word = strings.TrimSpace(word)
			res, err := a.lookup(ctx.Request, word, true)
			item := batchItem{Word: word, Status: StatusForError(err)}
			if err != nil {
				item.Error = err.Error()

			} else {
				item.Result = newJSONDocument(word, res)
			}
			ans.Items[i] = item
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// Forms lists all the supported grammatical forms
func (a *Actions) Forms(ctx *gin.Context) {
	ans := make([]formInfo, 0, forms.NumKeys)
	for _, k := range forms.Keys() {
		ans = append(ans, formInfo{Key: k.String(), Label: k.Label(), VerbOnly: k.VerbOnly()})
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) Ping(ctx *gin.Context) {
	t0 := time.Now()
	a.globalCtx.ReportingWriter.Write(&reporting.ServiceReport{
		DateTime: time.Now().In(a.globalCtx.TimezoneLocation),
		Action:   "ping",
		ProcTime: time.Since(t0).Seconds(),
		Status:   http.StatusOK,
	})
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"ok": true})
}

func NewActions(globalCtx *globctx.Context, batchConf config.BatchConf) *Actions {
	if globalCtx.Conjugator == nil {
		panic(fmt.Errorf("cannot create actions - no conjugator in global context"))
	}
	return &Actions{
		globalCtx: globalCtx,
		batchConf: batchConf,
	}
}
