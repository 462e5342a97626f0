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

// Package render produces XML and JSON documents out of
// conjugation tables.
package render

import (
	"bytes"
	"encoding/xml"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/katsuyo/forms"
)

type xmlTense struct {
	Name   string `xml:"name,attr"`
	Kana   string `xml:"kana"`
	Romaji string `xml:"romaji,omitempty"`
}

type xmlDocument struct {
	XMLName xml.Name   `xml:"conjugations"`
	Word    string     `xml:"word"`
	Tenses  []xmlTense `xml:"tense"`
}

// XML renders a table as a <conjugations> document with one <tense>
// element per form key. Romaji elements are omitted for forms with
// no romanized variant.
func XML(word string, tab forms.Table) ([]byte, error) {
	doc := xmlDocument{Word: word, Tenses: make([]xmlTense, 0, forms.NumKeys)}
	for _, k := range forms.Keys() {
		form := tab[k]
		item := xmlTense{Name: k.String(), Kana: form.Value()}
		if form.HasRomaji() || form.Status == forms.StatusNotApplicable {
			item.Romaji = form.RomajiValue()
		}
		doc.Tenses = append(doc.Tenses, item)
	}
	var buff bytes.Buffer
	buff.WriteString(xml.Header)
	enc := xml.NewEncoder(&buff)
	enc.Indent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	buff.WriteByte('\n')
	return buff.Bytes(), nil
}

type JSONForm struct {
	Kana   string `json:"kana"`
	Romaji string `json:"romaji,omitempty"`
	Status string `json:"status"`
}

// JSONForms is a table encoded as a JSON object with keys
// in the rendering order
type JSONForms []JSONForm

func (jf JSONForms) MarshalJSON() ([]byte, error) {
	var buff bytes.Buffer
	buff.WriteByte('{')
	for i, v := range jf {
		if i > 0 {
			buff.WriteByte(',')
		}
		key, err := sonic.Marshal(forms.Key(i).String())
		if err != nil {
			return nil, err
		}
		buff.Write(key)
		buff.WriteByte(':')
		val, err := sonic.Marshal(v)
		if err != nil {
			return nil, err
		}
		buff.Write(val)
	}
	buff.WriteByte('}')
	return buff.Bytes(), nil
}

type JSONDocument struct {
	Word  string    `json:"word"`
	Class string    `json:"class,omitempty"`
	Forms JSONForms `json:"forms"`
}

func NewJSONDocument(word string, tab forms.Table) JSONDocument {
	ans := JSONDocument{Word: word, Forms: make(JSONForms, forms.NumKeys)}
	for _, k := range forms.Keys() {
		form := tab[k]
		item := JSONForm{Kana: form.Value(), Status: form.Status.String()}
		if form.HasRomaji() || form.Status == forms.StatusNotApplicable {
			item.Romaji = form.RomajiValue()
		}
		ans.Forms[k] = item
	}
	return ans
}

// JSON renders a table as a JSON object
func JSON(word string, tab forms.Table) ([]byte, error) {
	return sonic.Marshal(NewJSONDocument(word, tab))
}
