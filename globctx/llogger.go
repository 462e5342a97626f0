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

package globctx

import (
	"net/http"
	"time"

	"github.com/czcorpus/katsuyo/conjugation"
	"github.com/czcorpus/katsuyo/logging"
	"github.com/czcorpus/katsuyo/reporting"
)

type LookupLogger struct {
	tDBWriter reporting.ReportingWriter
}

// Log logs a conjugation lookup using application logging (zerolog)
// and also by sending data to a monitoring module (currently TimescaleDB).
// The req argument can be nil.
func (b *LookupLogger) Log(
	req *http.Request,
	word string,
	result conjugation.Result,
	status int,
	procTime time.Duration,
	isBatch bool,
	err error,
) {
	report := reporting.NewLookupReport(word)
	if result.Table != nil {
		report.Class = result.Class.String()
	}
	report.Status = status
	report.ProcTime = procTime.Seconds()
	report.IsBatch = isBatch
	b.tDBWriter.Write(report)

	rec := logging.NewLookupRecord(req, report.ID, word)
	rec.Class = report.Class
	rec.Status = status
	rec.ProcTime = procTime
	rec.IsBatch = isBatch
	rec.Err = err
	logging.LogLookup(rec)
}

// NewLookupLogger creates a new lookup logging service
func NewLookupLogger(tDBWriter reporting.ReportingWriter) *LookupLogger {
	return &LookupLogger{
		tDBWriter: tDBWriter,
	}
}
