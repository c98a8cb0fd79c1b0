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
	"net/url"
	"strings"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/fetch"
)

// Reference is one entry of a fixed lookup table: a code and the literals
// the service associates with it.
type Reference struct {
	ID       string   `json:"id" required:"true"`
	Literals []string `json:"literals"`
}

var _ message.Message = &Reference{}
var _ table.Row = Reference{}

// InitMessage implements message.Message.
func (r *Reference) InitMessage(js interface{}) error { return message.Init(r, js) }

// Label is the display name of the reference (its first literal).
func (r Reference) Label() string {
	if len(r.Literals) == 0 {
		return ""
	}
	return r.Literals[0]
}

// CSV implements table.Row.
func (r Reference) CSV() []string { return []string{r.ID, r.Label()} }

// acervoCode resolves a reference-category token to the single-letter code
// the API expects. Tokens match case-insensitively, with or without a plural
// "s", by letter or by name; territory tokens are a synonym for geographic
// levels.
func acervoCode(category string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(category))
	s = strings.TrimSuffix(s, "s")
	switch s {
	case "a", "assunto":
		return "A", nil
	case "c", "classificacao", "classificacoe":
		return "C", nil
	case "n", "nivel", "nivei", "t", "territorio":
		return "N", nil
	case "p", "periodo":
		return "P", nil
	case "e", "periodicidade":
		return "E", nil
	case "v", "variavel", "variavei":
		return "V", nil
	}
	return "", apierror.New(apierror.InvalidCategory,
		"unrecognized reference category: %q", category)
}

// References retrieves the full code list for a reference category. The
// category is one of: assuntos (A), classificacoes (C), niveis geograficos
// (N, also accepted as territorios/T), periodos (P), periodicidades (E) or
// variaveis (V). An unrecognized token fails with InvalidCategory before any
// network round trip.
func References(ctx context.Context, category string) ([]Reference, error) {
	code, err := acervoCode(category)
	if err != nil {
		return nil, err
	}
	query := make(url.Values)
	query["acervo"] = []string{code}
	var js interface{}
	if err := fetch.FetchJSON(ctx, URL, &js, query, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch references %q", code)
	}
	items, ok := js.([]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"references %q: expected a JSON array", code)
	}
	refs := make([]Reference, len(items))
	for i, it := range items {
		if err := refs[i].InitMessage(it); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"references %q: item %d", code, i)
		}
	}
	return refs, nil
}

// ReferencesTable exports the code list as a two-column table.
func ReferencesTable(refs []Reference) *table.Table {
	tbl := table.New("id", "label")
	for _, r := range refs {
		tbl.AddRow(r)
	}
	return tbl
}
