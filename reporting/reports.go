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
	"time"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/hltscl"
	"github.com/google/uuid"
)

// LookupReport describes a single conjugation lookup
type LookupReport struct {
	ID       string
	Created  time.Time
	Word     string
	Class    string
	Status   int
	ProcTime float64
	IsBatch  bool
}

func (report *LookupReport) ToTimescaleDB(tableWriter *hltscl.TableWriter) *hltscl.Entry {
	return tableWriter.NewEntry(report.Created).
		Str("lookup_id", report.ID).
		Str("word", report.Word).
		Str("word_class", report.Class).
		Int("status", report.Status).
		Float("proc_time", report.ProcTime).
		Int("is_batch", boolToInt(report.IsBatch))
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func (report *LookupReport) GetTime() time.Time {
	return report.Created
}

func (report *LookupReport) GetTableName() string {
	return LookupsTable
}

func (report *LookupReport) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		ID       string    `json:"id"`
		Created  time.Time `json:"created"`
		Word     string    `json:"word"`
		Class    string    `json:"class"`
		Status   int       `json:"status"`
		ProcTime float64   `json:"procTime"`
		IsBatch  bool      `json:"isBatch"`
	}{
		ID:       report.ID,
		Created:  report.Created,
		Word:     report.Word,
		Class:    report.Class,
		Status:   report.Status,
		ProcTime: report.ProcTime,
		IsBatch:  report.IsBatch,
	})
}

func NewLookupReport(word string) *LookupReport {
	return &LookupReport{
		ID:      uuid.New().String(),
		Created: time.Now(),
		Word:    word,
	}
}

// ServiceReport describes calls of service (non-lookup) endpoints
type ServiceReport struct {
	DateTime time.Time
	Action   string
	ProcTime float64
	Status   int
}

func (report *ServiceReport) ToTimescaleDB(tableWriter *hltscl.TableWriter) *hltscl.Entry {
	return tableWriter.NewEntry(report.DateTime).
		Str("action", report.Action).
		Float("proc_time", report.ProcTime).
		Int("status", report.Status)
}

func (report *ServiceReport) GetTime() time.Time {
	return report.DateTime
}

func (report *ServiceReport) GetTableName() string {
	return ServiceTable
}

func (report *ServiceReport) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		DateTime time.Time `json:"dateTime"`
		Action   string    `json:"action"`
		ProcTime float64   `json:"procTime"`
		Status   int       `json:"status"`
	}{
		DateTime: report.DateTime,
		Action:   report.Action,
		ProcTime: report.ProcTime,
		Status:   report.Status,
	})
}
