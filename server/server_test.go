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
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/katsuyo/cache/backend"
	"github.com/czcorpus/katsuyo/config"
	"github.com/czcorpus/katsuyo/conjugation"
	"github.com/czcorpus/katsuyo/forms"
	"github.com/czcorpus/katsuyo/globctx"
	"github.com/czcorpus/katsuyo/reporting"
	"github.com/czcorpus/katsuyo/reverso"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestingFile(relativePath string, t *testing.T) string {
	_, filepath, _, _ := runtime.Caller(0)
	srcPath := path.Join(filepath, "..", "..", relativePath)
	content, err := os.ReadFile(srcPath)
	if err != nil {
		t.Error(err)
	}
	return string(content)
}

func newConjugatorServer(t *testing.T) *httptest.Server {
	taberu := loadTestingFile("testdata/reverso/taberu.html", t)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/conjugation-japanese-verb-taberu.html":
			fmt.Fprint(w, taberu)
		case "/conjugation-japanese-verb-kowareru.html":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestEngine(t *testing.T, baseURL string) http.Handler {
	gin.SetMode(gin.TestMode)
	conf := &config.Configuration{
		Reverso: reverso.Conf{BaseURL: baseURL},
		Batch:   config.BatchConf{MaxWords: 5, Concurrency: 2},
	}
	conf.ApplyDefaults()
	conf.Reverso.ReqPerSec = 100
	gctx := globctx.NewGlobalContext(context.Background())
	gctx.TimezoneLocation = time.UTC
	gctx.ReportingWriter = &reporting.NullWriter{}
	gctx.LookupLogger = globctx.NewLookupLogger(gctx.ReportingWriter)
	gctx.Cache = backend.NewNullCache()
	gctx.Conjugator = conjugation.NewService(reverso.NewClient(&conf.Reverso, gctx.Cache))
	return initEngine(gctx, conf)
}

func doRequest(engine http.Handler, method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type testDocument struct {
	Word  string                       `json:"word"`
	Class string                       `json:"class"`
	Forms map[string]map[string]string `json:"forms"`
}

func TestConjugateAdjectiveJSON(t *testing.T) {
	srv := newConjugatorServer(t)
	defer srv.Close()
	w := doRequest(newTestEngine(t, srv.URL), "GET", "/conjugate/hayai", "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc testDocument
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "hayai", doc.Word)
	assert.Equal(t, "plainI", doc.Class)
	assert.Equal(t, "hayakunai", doc.Forms["NEGATIVE"]["romaji"])
	assert.Equal(t, "はやくない", doc.Forms["NEGATIVE"]["kana"])
	assert.Equal(t, "N/A", doc.Forms["IMPERATIVE"]["kana"])
}

func TestConjugateVerbXML(t *testing.T) {
	srv := newConjugatorServer(t)
	defer srv.Close()
	w := doRequest(newTestEngine(t, srv.URL), "GET", "/conjugate/taberu?format=xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	body := w.Body.String()
	assert.Contains(t, body, "<word>taberu</word>")
	assert.Contains(t, body, `<tense name="CAUSATIVE">`)
	assert.Contains(t, body, "<kana>たべさせる</kana>")
	assert.Contains(t, body, "<romaji>tabesaseru</romaji>")
}

func TestConjugateErrors(t *testing.T) {
	srv := newConjugatorServer(t)
	defer srv.Close()
	engine := newTestEngine(t, srv.URL)
	assert.Equal(t, http.StatusUnprocessableEntity, doRequest(engine, "GET", "/conjugate/ringo", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(engine, "GET", "/conjugate/xyzru", "").Code)
	assert.Equal(t, http.StatusBadGateway, doRequest(engine, "GET", "/conjugate/kowareru", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(engine, "GET", "/conjugate/ii?format=yaml", "").Code)
}

func TestConjugateBatch(t *testing.T) {
	srv := newConjugatorServer(t)
	defer srv.Close()
	engine := newTestEngine(t, srv.URL)
	w := doRequest(engine, "POST", "/conjugate", `{"words": ["ii", "taberu", "ringo", "genkina"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Items []struct {
			Word   string        `json:"word"`
			Status int           `json:"status"`
			Result *testDocument `json:"result"`
			Error  string        `json:"error"`
		} `json:"items"`
	}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 4)
	assert.Equal(t, "ii", resp.Items[0].Word)
	assert.Equal(t, "yokatta", resp.Items[0].Result.Forms["PAST"]["romaji"])
	assert.Equal(t, "たべる", resp.Items[1].Result.Forms["PLAIN"]["kana"])
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Items[2].Status)
	assert.Nil(t, resp.Items[2].Result)
	assert.Contains(t, resp.Items[2].Error, "ringo")
	assert.Equal(t, "genkidesu", resp.Items[3].Result.Forms["POLITE"]["romaji"])
}

func TestConjugateBatchLimits(t *testing.T) {
	srv := newConjugatorServer(t)
	defer srv.Close()
	engine := newTestEngine(t, srv.URL)
	assert.Equal(t, http.StatusBadRequest, doRequest(engine, "POST", "/conjugate", `{"words": []}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(engine, "POST", "/conjugate", `{"words": `).Code)
	w := doRequest(engine, "POST", "/conjugate", `{"words": ["a", "b", "c", "d", "e", "f"]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestFormsAndPing(t *testing.T) {
	srv := newConjugatorServer(t)
	defer srv.Close()
	engine := newTestEngine(t, srv.URL)
	w := doRequest(engine, "GET", "/forms", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []formInfo
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 15)
	assert.Equal(t, "PLAIN", items[0].Key)
	assert.True(t, items[14].VerbOnly)

	w = doRequest(engine, "GET", "/service/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")

	assert.Equal(t, http.StatusNotFound, doRequest(engine, "GET", "/foo", "").Code)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusForError(nil))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusForError(&forms.ClassificationError{Word: "x"}))
	assert.Equal(t, http.StatusNotFound, StatusForError(fmt.Errorf("x: %w", &forms.NotFoundError{Query: "x"})))
	assert.Equal(t, http.StatusBadGateway, StatusForError(&forms.FetchError{Query: "x", Err: errors.New("down")}))
	assert.Equal(
		t,
		http.StatusGatewayTimeout,
		StatusForError(&forms.FetchError{Query: "x", Err: context.DeadlineExceeded}),
	)
	assert.Equal(t, http.StatusInternalServerError, StatusForError(errors.New("boom")))
}

func TestFetchTimeoutOverride(t *testing.T) {
	conf := &config.Configuration{}
	conf.ApplyDefaults()
	require.NoError(t, overrideConfWithCmd(conf, &CmdOptions{FetchTimeoutStr: "30s"}))
	assert.Equal(t, 30, conf.Reverso.TimeoutSecs)
	assert.Equal(t, config.DftlServerPort, conf.ServerPort)

	conf = &config.Configuration{}
	assert.Error(t, overrideConfWithCmd(conf, &CmdOptions{FetchTimeoutStr: "soon"}))
}

type closeRecorder struct {
	reporting.NullWriter
	closed bool
}

func (cr *closeRecorder) Close(ctx context.Context) error {
	cr.closed = true
	return nil
}

type slowCache struct {
	backend.NullCache
}

func (sc *slowCache) Close(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestFlushPendingWrites(t *testing.T) {
	writer := &closeRecorder{}
	gctx := globctx.NewGlobalContext(context.Background())
	gctx.ReportingWriter = writer
	gctx.Cache = backend.NewNullCache()
	flushPendingWrites(context.Background(), gctx)
	assert.True(t, writer.closed)
}

func TestFlushPendingWritesTimeout(t *testing.T) {
	writer := &closeRecorder{}
	gctx := globctx.NewGlobalContext(context.Background())
	gctx.ReportingWriter = writer
	gctx.Cache = &slowCache{}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	flushPendingWrites(ctx, gctx)
	assert.True(t, writer.closed)
	assert.Less(t, time.Since(t0), 5*time.Second)
}
