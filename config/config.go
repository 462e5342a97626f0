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

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/katsuyo/cache"
	"github.com/czcorpus/katsuyo/reporting"
	"github.com/czcorpus/katsuyo/reverso"
	"github.com/rs/zerolog/log"
)

const (
	DfltServerReadTimeoutSecs  = 10
	DfltServerWriteTimeoutSecs = 60
	DftlServerPort             = 8085
	DfltServerHost             = "localhost"
	DfltTimeZone               = "Asia/Tokyo"
	DfltBatchMaxWords          = 50
	DfltBatchConcurrency       = 4
)

// BatchConf limits batch lookups (i.e. more words per request)
type BatchConf struct {
	MaxWords    int `json:"maxWords"`
	Concurrency int `json:"concurrency"`
}

func (bc *BatchConf) applyDefaults(context string) {
	if bc.MaxWords == 0 {
		bc.MaxWords = DfltBatchMaxWords
		log.Warn().Msgf("%s.maxWords not specified, using default value %d", context, DfltBatchMaxWords)
	}
	if bc.Concurrency == 0 {
		bc.Concurrency = DfltBatchConcurrency
		log.Warn().Msgf("%s.concurrency not specified, using default value %d", context, DfltBatchConcurrency)
	}
}

func (bc *BatchConf) Validate(context string) error {
	if bc.MaxWords < 0 {
		return fmt.Errorf("%s.maxWords must be a positive number", context)
	}
	if bc.Concurrency < 0 {
		return fmt.Errorf("%s.concurrency must be a positive number", context)
	}
	return nil
}

type Configuration struct {
	ServerHost             string              `json:"serverHost"`
	ServerPort             int                 `json:"serverPort"`
	ServerReadTimeoutSecs  int                 `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                 `json:"serverWriteTimeoutSecs"`
	TimeZone               string              `json:"timeZone"`
	Logging                logging.LoggingConf `json:"logging"`
	Reverso                reverso.Conf        `json:"reverso"`
	Cache                  *cache.Conf         `json:"cache"`
	Reporting              *reporting.Conf     `json:"reporting"`
	Batch                  BatchConf           `json:"batch"`
}

// ApplyDefaults sets default values of optional items not
// configurable via command line arguments.
func (c *Configuration) ApplyDefaults() {
	if c.TimeZone == "" {
		c.TimeZone = DfltTimeZone
		log.Warn().Msgf("timeZone not specified, using default: %s", c.TimeZone)
	}
	c.Reverso.ApplyDefaults("reverso")
	c.Batch.applyDefaults("batch")
}

func (c *Configuration) Validate() error {
	var err error
	if err = c.Reverso.Validate("reverso"); err != nil {
		return err
	}
	if c.Cache != nil {
		if err = c.Cache.Validate("cache"); err != nil {
			return err
		}
	}
	if err = c.Batch.Validate("batch"); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return err
	}
	return nil
}

func (c *Configuration) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call c.Validate()
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(c.TimeZone)
	return loc
}

// ParseConfig decodes configuration from its JSON representation
func ParseConfig(rawData []byte) (*Configuration, error) {
	var conf Configuration
	if err := sonic.Unmarshal(rawData, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &conf, nil
}

func LoadConfig(path string) *Configuration {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	conf, err := ParseConfig(rawData)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return conf
}
