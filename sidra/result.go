// Copyright 2025 Dados Brasil

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sidra

import (
	"github.com/dadosbrasil/dadosbrasil/message"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Result is the re-indexed response of a query: one VariableData per
// requested variable, in response order.
type Result []VariableData

// Variable returns the block for the given variable id, or nil when the
// response carries no such variable.
func (r Result) Variable(id int) *VariableData {
	for i := range r {
		if r[i].ID == id {
			return &r[i]
		}
	}
	return nil
}

// VariableData is the full result of one variable: its result groups, one
// per classification-category combination.
type VariableData struct {
	ID       int         `json:"id" required:"true"`
	Variable string      `json:"variavel"`
	Unit     string      `json:"unidade"`
	Results  []ResultSet `json:"resultados" required:"true"`
}

var _ message.Message = &VariableData{}

// InitMessage implements message.Message.
func (v *VariableData) InitMessage(js interface{}) error { return message.Init(v, js) }

// ResultSet is one result group: the classification categories it is scoped
// to (empty when the aggregate has no classification dimension) and one
// series per locality.
type ResultSet struct {
	Classifications []ClassificationGroup `json:"classificacoes"`
	Series          []SeriesEntry         `json:"series"`
}

var _ message.Message = &ResultSet{}

func (r *ResultSet) InitMessage(js interface{}) error { return message.Init(r, js) }

// ClassificationGroup scopes a result group to one category of one
// classification. Category maps the category code to its name.
type ClassificationGroup struct {
	ID       int               `json:"id"`
	Name     string            `json:"nome"`
	Category map[string]string `json:"categoria"`
}

var _ message.Message = &ClassificationGroup{}

func (c *ClassificationGroup) InitMessage(js interface{}) error { return message.Init(c, js) }

// SeriesEntry is the series of one locality: period string to value. Periods
// absent from the response are absent from the map, never zero-filled.
// Values come back string-typed from the service.
type SeriesEntry struct {
	Locality Locality          `json:"localidade"`
	Values   map[string]string `json:"serie"`
}

var _ message.Message = &SeriesEntry{}

func (s *SeriesEntry) InitMessage(js interface{}) error { return message.Init(s, js) }

// Periods returns the period keys present in the series, sorted.
func (s *SeriesEntry) Periods() []string {
	periods := maps.Keys(s.Values)
	slices.Sort(periods)
	return periods
}

// Locality identifies the territory a series belongs to.
type Locality struct {
	ID    string        `json:"id"`
	Name  string        `json:"nome"`
	Level LocalityLevel `json:"nivel"`
}

var _ message.Message = &Locality{}

func (l *Locality) InitMessage(js interface{}) error { return message.Init(l, js) }

// LocalityLevel is the geographic level of a locality (e.g. N3, "Unidade da
// Federação").
type LocalityLevel struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

var _ message.Message = &LocalityLevel{}

func (l *LocalityLevel) InitMessage(js interface{}) error { return message.Init(l, js) }
