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
	"context"
	"fmt"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/stockparfait/fetch"
)

// Metadata describes one aggregate: its periods, variables, classifications
// and available geographic levels. It is the source of valid filter values
// for a Query.
type Metadata struct {
	ID      int    `json:"id" required:"true"`
	Name    string `json:"nome" required:"true"`
	Subject string `json:"assunto"`
	Survey  string `json:"pesquisa"`
	URL     string `json:"URL"`
	// Period describes the publication frequency and the covered range.
	Period *Period `json:"periodicidade"`
	// LocalityLevels maps an administrative class (e.g. "Administrativo") to
	// the geographic level codes available at it (e.g. "N1", "N3").
	LocalityLevels  map[string][]string `json:"nivelTerritorial"`
	Variables       []Variable          `json:"variaveis"`
	Classifications []Classification    `json:"classificacoes"`
}

var _ message.Message = &Metadata{}

// InitMessage implements message.Message.
func (m *Metadata) InitMessage(js interface{}) error { return message.Init(m, js) }

// Period is the publication frequency and covered range of an aggregate.
type Period struct {
	Frequency string `json:"frequencia"`
	Start     int    `json:"inicio"`
	End       int    `json:"fim"`
}

var _ message.Message = &Period{}

func (p *Period) InitMessage(js interface{}) error { return message.Init(p, js) }

// Variable is one queryable variable of an aggregate.
type Variable struct {
	ID   int    `json:"id" required:"true"`
	Name string `json:"nome"`
	Unit string `json:"unidade"`
	// Summarization lists the summarization dimensions applicable to the
	// variable.
	Summarization []string `json:"sumarizacao"`
}

var _ message.Message = &Variable{}

func (v *Variable) InitMessage(js interface{}) error { return message.Init(v, js) }

// Classification is a categorical dimension applicable to an aggregate.
type Classification struct {
	ID            int                 `json:"id" required:"true"`
	Name          string              `json:"nome"`
	Summarization *ClassSummarization `json:"sumarizacao"`
	Categories    []Category          `json:"categorias"`
}

var _ message.Message = &Classification{}

func (c *Classification) InitMessage(js interface{}) error { return message.Init(c, js) }

// ClassSummarization reports whether a classification can be summarized and
// which variables are exempt.
type ClassSummarization struct {
	Status     bool  `json:"status"`
	Exceptions []int `json:"excecao"`
}

var _ message.Message = &ClassSummarization{}

func (s *ClassSummarization) InitMessage(js interface{}) error { return message.Init(s, js) }

// Category is one enumerated value of a classification.
type Category struct {
	ID    int    `json:"id" required:"true"`
	Name  string `json:"nome"`
	Unit  string `json:"unidade"`
	Level int    `json:"nivel"`
}

var _ message.Message = &Category{}

func (c *Category) InitMessage(js interface{}) error { return message.Init(c, js) }

// FetchMetadata retrieves the descriptive metadata of an aggregate in a
// single request. It fails with NotFound when the service reports no such
// aggregate (a null, empty or id-less body), with MalformedResponse when the
// body does not parse as aggregate metadata, and with Transport when the
// round trip itself fails. Nothing is retried.
func FetchMetadata(ctx context.Context, aggregate int) (*Metadata, error) {
	uri := fmt.Sprintf("%s/%d/metadados", URL, aggregate)
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch metadata for aggregate %d", aggregate)
	}
	switch v := js.(type) {
	case nil:
		return nil, apierror.New(apierror.NotFound, "no such aggregate: %d", aggregate)
	case []interface{}:
		if len(v) == 0 {
			return nil, apierror.New(apierror.NotFound, "no such aggregate: %d", aggregate)
		}
		return nil, apierror.New(apierror.MalformedResponse,
			"metadata for aggregate %d: expected a JSON object", aggregate)
	case map[string]interface{}:
		if _, ok := v["id"]; !ok {
			return nil, apierror.New(apierror.NotFound, "no such aggregate: %d", aggregate)
		}
		var m Metadata
		if err := m.InitMessage(js); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"metadata for aggregate %d", aggregate)
		}
		return &m, nil
	}
	return nil, apierror.New(apierror.MalformedResponse,
		"metadata for aggregate %d: unexpected JSON shape", aggregate)
}
