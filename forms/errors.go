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

package forms

import "fmt"

// ClassificationError means that a word matches none of the known
// adjective or verb patterns.
type ClassificationError struct {
	Word string
}

func (err *ClassificationError) Error() string {
	return fmt.Sprintf("'%s' not recognized as an adjective or a verb", err.Word)
}

// FetchError means that an external source of verb forms
// could not be reached or it responded with an error.
type FetchError struct {
	Query string
	Err   error
}

func (err *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch conjugation of '%s': %s", err.Query, err.Err)
}

func (err *FetchError) Unwrap() error {
	return err.Err
}

// NotFoundError means that verb forms were fetched but
// none of them could be recognized.
type NotFoundError struct {
	Query string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("verb '%s' not recognized", err.Query)
}
