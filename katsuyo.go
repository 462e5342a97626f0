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


package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/czcorpus/katsuyo/cache/backend"
	"github.com/czcorpus/katsuyo/conjugation"
	"github.com/czcorpus/katsuyo/forms"
	"github.com/czcorpus/katsuyo/render"
	"github.com/czcorpus/katsuyo/reverso"
	"github.com/czcorpus/katsuyo/server"
	"github.com/rs/zerolog/log"
)

const cacheCloseTimeout = 5 * time.Second

var (
	version   string
	buildDate string
	gitCommit string
)

type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

var versionInfo = VersionInfo{
	Version:   version,
	BuildDate: buildDate,
	GitCommit: gitCommit,
}

func determineConfigPath(argPos int) string {
	return flag.Arg(argPos)
}

func renderTable(format, word string, tab forms.Table) ([]byte, error) {
	switch format {
	case "xml":
		return render.XML(word, tab)
	case "json":
		return render.JSON(word, tab)
	default:
		return nil, fmt.Errorf("unsupported output format %s", format)
	}
}

func runConjugate(cmdOpts *server.CmdOptions, word, confPath, format string) int {
	conf := server.FindAndLoadConfig(confPath, cmdOpts, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	respCache := backend.New(ctx, conf.Cache)
	defer func() {
		closeCtx, cancelClose := context.WithTimeout(context.Background(), cacheCloseTimeout)
		defer cancelClose()
		if err := respCache.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to flush response cache")
		}
	}()
	svc := conjugation.NewService(reverso.NewClient(&conf.Reverso, respCache))
	res, err := svc.Conjugate(ctx, word)
	if err != nil {
		log.Error().Err(err).Str("word", word).Msg("failed to conjugate")
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	out, err := renderTable(format, word, res.Table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func main() {
	cmdOpts := new(server.CmdOptions)
	var format string
	flag.StringVar(&cmdOpts.Host, "host", "", "Host to listen on")
	flag.IntVar(&cmdOpts.Port, "port", 0, "Port to listen on")
	flag.IntVar(&cmdOpts.ReadTimeoutSecs, "read-timeout", 0, "Server read timeout in seconds")
	flag.IntVar(&cmdOpts.WriteTimeoutSecs, "write-timeout", 0, "Server write timeout in seconds")
	flag.StringVar(&cmdOpts.LogPath, "log-path", "", "A file to log to (if empty then stderr is used)")
	flag.StringVar(&cmdOpts.LogLevel, "log-level", "", "A log level (debug, info, warn/warning, error)")
	flag.StringVar(&cmdOpts.FetchTimeoutStr, "fetch-timeout", "0", "Timeout for verb page requests (e.g. 10s, 1m)")
	flag.StringVar(&format, "format", "xml", "Output format of the conjugate action (xml, json)")

	flag.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"katsuyo - Japanese adjective and verb conjugation tables"+
				"\n\nUsage:"+
				"\n\t%s [options] start [conf.json]"+
				"\n\t%s [options] conjugate [word] [conf.json]"+
				"\n\t%s [options] version\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]),
		)
		flag.PrintDefaults()
	}
	flag.Parse()

	action := flag.Arg(0)

	switch action {
	case "version":
		fmt.Printf("katsuyo %s\nbuild date: %s\nlast commit: %s\n",
			versionInfo.Version, versionInfo.BuildDate, versionInfo.GitCommit)
		return
	case "start":
		conf := server.FindAndLoadConfig(determineConfigPath(1), cmdOpts, false)
		log.Info().
			Str("version", versionInfo.Version).
			Str("buildDate", versionInfo.BuildDate).
			Str("last commit", versionInfo.GitCommit).
			Msg("Starting katsuyo")
		server.RunService(conf)
	case "conjugate":
		word := strings.TrimSpace(flag.Arg(1))
		if word == "" {
			fmt.Fprintln(os.Stderr, "missing word to conjugate. Try -h for help")
			os.Exit(1)
		}
		os.Exit(runConjugate(cmdOpts, word, determineConfigPath(2), strings.ToLower(format)))
	default:
		fmt.Printf("Unknown action [%s]. Try -h for help\n", flag.Arg(0))
		os.Exit(1)
	}
}
