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

package reverso

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL     = "https://conjugator.reverso.net"
	DefaultReqPerSec   = 1.0
	DefaultBurst       = 2
	DefaultTimeoutSecs = 15

	DefaultClientUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Conf configures access to the external verb conjugator
type Conf struct {
	BaseURL         string  `json:"baseURL"`
	ClientUserAgent string  `json:"clientUserAgent"`
	ReqPerSec       float64 `json:"reqPerSec"`
	Burst           int     `json:"burst"`
	TimeoutSecs     int     `json:"timeoutSecs"`
}

func (conf *Conf) Timeout() time.Duration {
	return time.Duration(conf.TimeoutSecs) * time.Second
}

// ApplyDefaults sets missing optional values
func (conf *Conf) ApplyDefaults(context string) {
	if conf.BaseURL == "" {
		conf.BaseURL = DefaultBaseURL
		log.Warn().Msgf("%s.baseURL not specified, using default %s", context, DefaultBaseURL)
	}
	if conf.ClientUserAgent == "" {
		conf.ClientUserAgent = DefaultClientUserAgent
		log.Warn().Msgf("%s.clientUserAgent not specified, using a default browser-like value", context)
	}
	if conf.ReqPerSec == 0 {
		conf.ReqPerSec = DefaultReqPerSec
		log.Warn().Msgf("%s.reqPerSec not specified, using default %01.1f", context, DefaultReqPerSec)
	}
	if conf.Burst == 0 {
		conf.Burst = DefaultBurst
	}
	if conf.TimeoutSecs == 0 {
		conf.TimeoutSecs = DefaultTimeoutSecs
		log.Warn().Msgf("%s.timeoutSecs not specified, using default %d", context, DefaultTimeoutSecs)
	}
}

func (conf *Conf) Validate(context string) error {
	if conf.BaseURL == "" {
		return fmt.Errorf("%s.baseURL is missing/empty", context)
	}
	if conf.ClientUserAgent == "" {
		return fmt.Errorf("%s.clientUserAgent is missing/empty", context)
	}
	if conf.ReqPerSec < 0 {
		return fmt.Errorf("%s.reqPerSec must be a positive number", context)
	}
	if conf.Burst < 0 {
		return fmt.Errorf("%s.burst must be a positive number", context)
	}
	return nil
}
