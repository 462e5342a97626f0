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
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/datetime"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/katsuyo/config"
	"github.com/rs/zerolog/log"
)

type CmdOptions struct {
	Host             string
	Port             int
	ReadTimeoutSecs  int
	WriteTimeoutSecs int
	LogPath          string
	LogLevel         string
	FetchTimeoutStr  string
}

func (opts CmdOptions) FetchTimeout() (time.Duration, error) {
	// we test for '0' as the parser below does not like
	// numbers without suffix ('d', 'h', 's', ...)
	if opts.FetchTimeoutStr == "" || opts.FetchTimeoutStr == "0" {
		return 0, nil
	}
	return datetime.ParseDuration(opts.FetchTimeoutStr)
}

func configSearchPaths() []string {
	_, filepath, _, _ := runtime.Caller(0)
	return []string{
		path.Join(filepath, "..", "..", "conf.json"),
		"/usr/local/etc/katsuyo/conf.json",
		"/usr/local/etc/katsuyo.json",
	}
}

// FindAndLoadConfig loads configuration from explicitPath or (if empty)
// from the first existing file of predefined locations. If nothing is found
// and the config is optional, default configuration is used. Otherwise,
// the function exits the program.
func FindAndLoadConfig(explicitPath string, cmdOpts *CmdOptions, optional bool) *config.Configuration {
	var conf *config.Configuration
	srcPath := explicitPath
	if explicitPath != "" {
		conf = config.LoadConfig(explicitPath)

	} else {
		srchPaths := configSearchPaths()
		for _, path := range srchPaths {
			isFile, err := fs.IsFile(path)
			if err != nil {
				log.Fatal().Msgf(
					"error when searching for a suitable configuration file (searched in: %s): %s",
					strings.Join(srchPaths, ", "),
					err,
				)
			}
			if isFile {
				conf = config.LoadConfig(path)
				srcPath = path
				break
			}
		}
		if conf == nil && optional {
			conf = &config.Configuration{}
			srcPath = "defaults"

		} else if conf == nil {
			log.Fatal().Msgf("cannot find any suitable configuration file (searched in: %s)", strings.Join(srchPaths, ", "))
		}
	}
	if cmdOpts.LogLevel != "" {
		conf.Logging.Level = logging.LogLevel(cmdOpts.LogLevel)

	} else if conf.Logging.Level == "" {
		conf.Logging.Level = "info"
	}
	logging.SetupLogging(conf.Logging)
	log.Info().Msgf("loaded configuration from %s", srcPath)
	log.Info().Msgf("using logging level '%s'", conf.Logging.Level)
	conf.ApplyDefaults()
	if err := overrideConfWithCmd(conf, cmdOpts); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize configuration")
	}
	if err := conf.Validate(); err != nil {
		log.Fatal().Err(err).Msg("")
	}
	return conf
}

func overrideConfWithCmd(origConf *config.Configuration, cmdConf *CmdOptions) error {
	if cmdConf.Host != "" {
		origConf.ServerHost = cmdConf.Host

	} else if origConf.ServerHost == "" {
		log.Warn().Msgf(
			"serverHost not specified, using default value %s",
			config.DfltServerHost,
		)
		origConf.ServerHost = config.DfltServerHost
	}
	if cmdConf.Port != 0 {
		origConf.ServerPort = cmdConf.Port

	} else if origConf.ServerPort == 0 {
		log.Warn().Msgf(
			"serverPort not specified, using default value %d",
			config.DftlServerPort,
		)
		origConf.ServerPort = config.DftlServerPort
	}
	if cmdConf.ReadTimeoutSecs != 0 {
		origConf.ServerReadTimeoutSecs = cmdConf.ReadTimeoutSecs

	} else if origConf.ServerReadTimeoutSecs == 0 {
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default value %d",
			config.DfltServerReadTimeoutSecs,
		)
		origConf.ServerReadTimeoutSecs = config.DfltServerReadTimeoutSecs
	}
	if cmdConf.WriteTimeoutSecs != 0 {
		origConf.ServerWriteTimeoutSecs = cmdConf.WriteTimeoutSecs

	} else if origConf.ServerWriteTimeoutSecs == 0 {
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default value %d",
			config.DfltServerWriteTimeoutSecs,
		)
		origConf.ServerWriteTimeoutSecs = config.DfltServerWriteTimeoutSecs
	}
	if cmdConf.LogPath != "" {
		origConf.Logging.Path = cmdConf.LogPath

	} else if origConf.Logging.Path == "" {
		log.Warn().Msg("logPath not specified, using stderr")
	}
	fetchTimeout, err := cmdConf.FetchTimeout()
	if err != nil {
		return err
	}
	if fetchTimeout > 0 {
		origConf.Reverso.TimeoutSecs = max(int(fetchTimeout.Seconds()), 1)
	}
	return nil
}
