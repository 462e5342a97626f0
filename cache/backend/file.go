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

package backend

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/katsuyo/cache"
)

// File stores cached entries as JSON files in a two-level
// directory structure derived from entry IDs.
type File struct {
	conf *cache.Conf
}

func (frc *File) createItemPath(url string) string {
	bs := fmt.Sprintf("%x.json", cache.GenerateCacheID(url))
	return path.Join(frc.conf.FileRootPath, bs[0:1], bs)
}

func (frc *File) Get(ctx context.Context, url string) (cache.Entry, error) {
	filePath := frc.createItemPath(url)
	isFile, err := fs.IsFile(filePath)
	if err != nil {
		return cache.Entry{}, err
	}
	if !isFile {
		return cache.Entry{}, cache.ErrCacheMiss
	}
	mtime, err := fs.GetFileMtime(filePath)
	if err != nil {
		return cache.Entry{}, fmt.Errorf("failed to obtain file mtime: %w", err)
	}
	if time.Since(mtime) > frc.conf.TTL() {
		if err := fs.DeleteFile(filePath); err != nil {
			return cache.Entry{}, err
		}
		return cache.Entry{}, cache.ErrCacheMiss
	}
	newTime := time.Now()
	if err := os.Chtimes(filePath, newTime, newTime); err != nil {
		return cache.Entry{}, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return cache.Entry{}, err
	}
	var ans cache.Entry
	if err := sonic.Unmarshal(data, &ans); err != nil {
		return cache.Entry{}, fmt.Errorf("file cache access error: %w", err)
	}
	return ans, nil
}

func (frc *File) Set(ctx context.Context, url string, entry cache.Entry) error {
	if !cache.ShouldWriteToCache(entry) {
		return nil
	}
	targetPath := frc.createItemPath(url)
	if err := os.MkdirAll(path.Dir(targetPath), os.ModePerm); err != nil {
		return err
	}
	data, err := sonic.Marshal(&entry)
	if err != nil {
		return err
	}
	return os.WriteFile(targetPath, data, 0644)
}

// Close does nothing as file writes are synchronous
func (frc *File) Close(ctx context.Context) error {
	return nil
}

func NewFileCache(conf *cache.Conf) *File {
	return &File{
		conf: conf,
	}
}
