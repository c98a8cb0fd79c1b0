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

package camara

import (
	"context"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/fetch"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// referencePaths maps the reference kind tokens of this package to the
// service paths of the code lists.
var referencePaths = map[string]string{
	"codSituacaoDeputados":  "deputados/codSituacao",
	"siglaUF":               "deputados/siglaUF",
	"codSituacaoEvento":     "eventos/codSituacaoEvento",
	"codTipoEvento":         "eventos/codTipoEvento",
	"codSituacaoOrgao":      "orgaos/codSituacao",
	"codTipoOrgao":          "orgaos/codTipoOrgao",
	"codSituacaoProposicao": "proposicoes/codSituacao",
	"codTema":               "proposicoes/codTema",
	"codTipoTramitacao":     "proposicoes/codTipoTramitacao",
	"siglaTipo":             "proposicoes/siglaTipo",
	"situacoesDeputado":     "situacoesDeputado",
	"situacoesEvento":       "situacoesEvento",
	"situacoesOrgao":        "situacoesOrgao",
	"situacoesProposicao":   "situacoesProposicao",
	"tiposEvento":           "tiposEvento",
	"tiposOrgao":            "tiposOrgao",
	"tiposProposicao":       "tiposProposicao",
	"tiposTramitacao":       "tiposTramitacao",
	"uf":                    "uf",
}

// ReferenceKinds lists the kind tokens References accepts, sorted.
func ReferenceKinds() []string {
	kinds := maps.Keys(referencePaths)
	slices.Sort(kinds)
	return kinds
}

// Reference is one entry of a fixed code list of the service.
type Reference struct {
	Code        string `json:"cod" required:"true"`
	Acronym     string `json:"sigla"`
	Name        string `json:"nome"`
	Description string `json:"descricao"`
}

var _ message.Message = &Reference{}
var _ table.Row = Reference{}

// InitMessage implements message.Message.
func (r *Reference) InitMessage(js interface{}) error { return message.Init(r, js) }

// CSV implements table.Row.
func (r Reference) CSV() []string {
	return []string{r.Code, r.Acronym, r.Name, r.Description}
}

// References retrieves the code list of one reference kind, one of the
// tokens listed by ReferenceKinds. An unknown kind fails with
// InvalidCategory before any network round trip.
func References(ctx context.Context, kind string) ([]Reference, error) {
	path, ok := referencePaths[kind]
	if !ok {
		return nil, apierror.New(apierror.InvalidCategory,
			"unrecognized reference kind: %q", kind)
	}
	uri := URL + "/referencias/" + path
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch references %q", kind)
	}
	payload, _, err := unwrap(js, "references "+kind)
	if err != nil {
		return nil, err
	}
	items, ok := payload.([]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"references %q: expected a JSON array payload", kind)
	}
	refs := make([]Reference, len(items))
	for i, it := range items {
		if err := refs[i].InitMessage(it); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"references %q: item %d", kind, i)
		}
	}
	return refs, nil
}

// ReferencesTable exports a code list.
func ReferencesTable(refs []Reference) *table.Table {
	tbl := table.New("code", "acronym", "name", "description")
	for _, r := range refs {
		tbl.AddRow(r)
	}
	return tbl
}
