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

const (
	NotApplicableValue = "N/A"
	NotAvailableValue  = "unavailable"
)

// Status says whether a form carries a value
type Status int

const (
	StatusNotAvailable Status = iota
	StatusAvailable
	StatusNotApplicable
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusNotApplicable:
		return "notApplicable"
	case StatusNotAvailable:
		return "notAvailable"
	}
	return "unknown"
}

// Form is a value of a single table cell. Kana contains
// the Japanese script variant of the form, Romaji is optional
// (empty if there is no romanized variant).
type Form struct {
	Kana   string
	Romaji string
	Status Status
}

func (f Form) IsAvailable() bool {
	return f.Status == StatusAvailable
}

func (f Form) HasRomaji() bool {
	return f.Status == StatusAvailable && f.Romaji != ""
}

// Value returns the kana value or a placeholder for
// missing forms.
func (f Form) Value() string {
	switch f.Status {
	case StatusAvailable:
		return f.Kana
	case StatusNotApplicable:
		return NotApplicableValue
	}
	return NotAvailableValue
}

// RomajiValue is like Value but for the romanized variant
func (f Form) RomajiValue() string {
	switch f.Status {
	case StatusAvailable:
		if f.Romaji == "" {
			return NotAvailableValue
		}
		return f.Romaji
	case StatusNotApplicable:
		return NotApplicableValue
	}
	return NotAvailableValue
}

func Available(kanaVal, romaji string) Form {
	return Form{Kana: kanaVal, Romaji: romaji, Status: StatusAvailable}
}

func NotApplicable() Form {
	return Form{Status: StatusNotApplicable}
}

func NotAvailable() Form {
	return Form{Status: StatusNotAvailable}
}

// Table maps all the form keys to their values.
// Any table produced by this module contains all the keys.
type Table map[Key]Form

// NewTable creates a table with all the forms set as not available
func NewTable() Table {
	ans := make(Table, NumKeys)
	for _, k := range Keys() {
		ans[k] = NotAvailable()
	}
	return ans
}

// Complete tests whether the table contains all the keys
func (t Table) Complete() bool {
	for _, k := range Keys() {
		if _, ok := t[k]; !ok {
			return false
		}
	}
	return true
}

// NumAvailable returns number of forms with an actual value
func (t Table) NumAvailable() int {
	var ans int
	for _, v := range t {
		if v.IsAvailable() {
			ans++
		}
	}
	return ans
}
