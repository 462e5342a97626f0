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

package logging

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

func extractClientIP(req *http.Request) string {
	ip := req.Header.Get("x-forwarded-for")
	if ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

// LookupRecord describes a conjugation lookup for the application log
type LookupRecord struct {
	ID        string
	IPAddress string
	Word      string
	Class     string
	Status    int
	ProcTime  time.Duration
	IsBatch   bool
	Err       error
}

func (rr *LookupRecord) GetClientIP() net.IP {
	return net.ParseIP(rr.IPAddress)
}

// NewLookupRecord creates a record with client information
// taken from req (which may be nil for command line lookups).
func NewLookupRecord(req *http.Request, id, word string) *LookupRecord {
	ans := &LookupRecord{ID: id, Word: word}
	if req != nil {
		ans.IPAddress = extractClientIP(req)
	}
	return ans
}

// LogLookup writes a lookup record to the application log
func LogLookup(rec *LookupRecord) {
	event := log.Info()
	if rec.Err != nil {
		event = log.Warn().Err(rec.Err)
	}
	event.
		Str("type", "katsuyo").
		Str("lookupId", rec.ID).
		Str("word", rec.Word).
		Str("class", rec.Class).
		Int("status", rec.Status).
		Float64("procTime", rec.ProcTime.Seconds()).
		Bool("isBatch", rec.IsBatch)
	if rec.IPAddress != "" {
		event.Str("clientIP", rec.IPAddress)
	}
	event.Msg("conjugation lookup")
}
