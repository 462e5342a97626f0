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

import (
	"fmt"
	"strings"
)

// Key identifies one grammatical form in a conjugation table
type Key int

const (
	Plain Key = iota
	Polite
	Negative
	PoliteNegative
	Past
	PolitePast
	PastNegative
	PolitePastNegative
	TeForm
	Potential
	Passive
	Causative
	Conditional
	Volitional
	Imperative
)

var keyIdents = [...]string{
	"PLAIN",
	"POLITE",
	"NEGATIVE",
	"POLITE_NEGATIVE",
	"PAST",
	"POLITE_PAST",
	"PAST_NEGATIVE",
	"POLITE_PAST_NEGATIVE",
	"TE_FORM",
	"POTENTIAL",
	"PASSIVE",
	"CAUSATIVE",
	"CONDITIONAL",
	"VOLITIONAL",
	"IMPERATIVE",
}

var keyLabels = [...]string{
	"Plain",
	"Polite",
	"Negative",
	"Polite Negative",
	"Past",
	"Polite Past",
	"Past Negative",
	"Polite Past Negative",
	"Te Form",
	"Potential",
	"Passive",
	"Causative",
	"Conditional",
	"Volitional",
	"Imperative",
}

// NumKeys is the number of forms each table contains
const NumKeys = len(keyIdents)

func (k Key) Validate() error {
	if k < 0 || int(k) >= NumKeys {
		return fmt.Errorf("invalid form key %d", int(k))
	}
	return nil
}

// String returns the key identifier as used in the output
// documents (e.g. POLITE_PAST)
func (k Key) String() string {
	if k.Validate() != nil {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyIdents[k]
}

// Label returns a human readable name of the form
func (k Key) Label() string {
	if k.Validate() != nil {
		return k.String()
	}
	return keyLabels[k]
}

// VerbOnly tells whether the form exists only for verbs
// (adjective tables set them as not applicable).
func (k Key) VerbOnly() bool {
	return k >= Potential && k <= Imperative
}

func (k Key) MarshalText() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(data []byte) error {
	v, err := ParseKey(string(data))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Keys returns all the keys in the order they should be rendered
func Keys() []Key {
	ans := make([]Key, NumKeys)
	for i := range ans {
		ans[i] = Key(i)
	}
	return ans
}

// ParseKey finds a key by its identifier. Letter case is ignored.
func ParseKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, v := range keyIdents {
		if v == s {
			return Key(i), nil
		}
	}
	return -1, fmt.Errorf("unknown form key '%s'", s)
}
