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

package senado

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Blocks lists the party blocks of the senate.
func Blocks(ctx context.Context) ([]Record, error) {
	return fetchRecords(ctx, "blocoParlamentar/lista.json", nil,
		"ListaBlocoParlamentar", "Blocos", "Bloco")
}

// Parties lists the senate parties, optionally including the extinct ones.
func Parties(ctx context.Context, includeInactive bool) ([]Record, error) {
	var query url.Values
	if includeInactive {
		query = url.Values{"indAtivos": {"N"}}
	}
	return fetchRecords(ctx, "senador/partidos.json", query,
		"ListaPartidos", "Partidos", "Partido")
}

// BudgetAmendments lists the senate's budget bill amendment lots.
func BudgetAmendments(ctx context.Context) ([]Record, error) {
	return fetchRecords(ctx, "orcamento/lista.json", nil,
		"ListaLoteEmendas", "LotesEmendasOrcamento", "LoteEmendasOrcamento")
}

// SpeechKinds lists the kinds of speaking turns of the plenary, active
// ones or all of them.
func SpeechKinds(ctx context.Context, activeOnly bool) ([]Record, error) {
	active := "N"
	if activeOnly {
		active = "S"
	}
	return fetchRecords(ctx, "senador/lista/tiposUsoPalavra.json",
		url.Values{"indAtivos": {active}},
		"ListaTiposUsoPalavra", "TiposUsoPalavra", "TipoUsoPalavra")
}

// Senator list kinds.
const (
	SenatorsCurrent     = "atual"     // every senator in office
	SenatorsIncumbents  = "titulares" // only those elected as incumbents
	SenatorsSubstitutes = "suplentes" // only those elected as substitutes
	SenatorsDeparted    = "afastados" // senators currently away from office
)

// senatorLists maps a list kind to its service path, envelope key and
// participation parameter.
var senatorLists = map[string]struct {
	path          string
	key           string
	participation string
}{
	SenatorsCurrent:     {"atual", "ListaParlamentarEmExercicio", ""},
	SenatorsIncumbents:  {"atual", "ListaParlamentarEmExercicio", "T"},
	SenatorsSubstitutes: {"atual", "ListaParlamentarEmExercicio", "S"},
	SenatorsDeparted:    {"afastados", "AfastamentoAtual", ""},
}

// SenatorListKinds lists the valid Senators kinds.
func SenatorListKinds() []string {
	kinds := maps.Keys(senatorLists)
	slices.Sort(kinds)
	return kinds
}

// SenatorFilter narrows a Senators or LegislatureSenators call. State (a
// two-letter UF code) becomes a query parameter of the service; the other
// predicates filter the returned records. Sex is "F" or "M"; Containing
// and Excluding match the parliamentary and full names case-insensitively.
type SenatorFilter struct {
	Sex        string
	State      string
	Party      string
	Containing string
	Excluding  string
}

// sexNames maps the filter codes to the spelled-out values of the service.
var sexNames = map[string]string{"F": "Feminino", "M": "Masculino"}

// match reports whether one senator record passes the client-side
// predicates of the filter.
func (f SenatorFilter) match(r Record) bool {
	if f.Sex != "" {
		sex := r.StringPath("IdentificacaoParlamentar", "SexoParlamentar")
		if sex != sexNames[strings.ToUpper(f.Sex)] {
			return false
		}
	}
	if f.Party != "" {
		party := r.StringPath("IdentificacaoParlamentar", "SiglaPartidoParlamentar")
		if !strings.EqualFold(party, f.Party) {
			return false
		}
	}
	name := strings.ToUpper(
		r.StringPath("IdentificacaoParlamentar", "NomeParlamentar") + " " +
			r.StringPath("IdentificacaoParlamentar", "NomeCompletoParlamentar"))
	if f.Containing != "" && !strings.Contains(name, strings.ToUpper(f.Containing)) {
		return false
	}
	if f.Excluding != "" && strings.Contains(name, strings.ToUpper(f.Excluding)) {
		return false
	}
	return true
}

// filterRecords applies the client-side predicates. Zero matches is an
// empty list, not an error.
func filterRecords(rs []Record, f SenatorFilter) []Record {
	res := []Record{}
	for _, r := range rs {
		if f.match(r) {
			res = append(res, r)
		}
	}
	return res
}

// Senators lists the senators of one list kind, filtered. An unknown kind
// fails with InvalidCategory before any round trip. The departed list does
// not take the uf parameter, so its State predicate filters on the mandate
// record instead.
func Senators(ctx context.Context, kind string, f SenatorFilter) ([]Record, error) {
	l, ok := senatorLists[kind]
	if !ok {
		return nil, apierror.New(apierror.InvalidCategory,
			"unknown senator list %q; valid lists: %s",
			kind, strings.Join(SenatorListKinds(), ", "))
	}
	query := make(url.Values)
	if l.participation != "" {
		query["participacao"] = []string{l.participation}
	}
	state := strings.ToUpper(f.State)
	if state != "" && kind != SenatorsDeparted {
		query["uf"] = []string{state}
	}
	rs, err := fetchRecords(ctx, "senador/lista/"+l.path+".json", query,
		l.key, "Parlamentares", "Parlamentar")
	if err != nil {
		return nil, err
	}
	rs = filterRecords(rs, f)
	if state != "" && kind == SenatorsDeparted {
		away := []Record{}
		for _, r := range rs {
			if r.StringPath("Mandato", "UfParlamentar") == state {
				away = append(away, r)
			}
		}
		rs = away
	}
	return rs, nil
}

// LegislatureOptions narrows a LegislatureSenators call on the service
// side. Exercise "S" restricts to senators that effectively held office
// and "N" to those that never did; Participation "T" to incumbents and "S"
// to substitutes.
type LegislatureOptions struct {
	Exercise      string
	Participation string
}

// LegislatureSenators lists the senators of the legislatures start through
// end, current or past. A zero end queries the single legislature start.
func LegislatureSenators(ctx context.Context, start, end int, opt LegislatureOptions, f SenatorFilter) ([]Record, error) {
	path := fmt.Sprintf("senador/lista/legislatura/%d", start)
	if end > 0 {
		path += fmt.Sprintf("/%d", end)
	}
	query := make(url.Values)
	if opt.Exercise != "" {
		query["exercicio"] = []string{opt.Exercise}
	}
	if opt.Participation != "" {
		query["participacao"] = []string{opt.Participation}
	}
	if f.State != "" {
		query["uf"] = []string{strings.ToUpper(f.State)}
	}
	rs, err := fetchRecords(ctx, path+".json", query,
		"ListaParlamentarLegislatura", "Parlamentares", "Parlamentar")
	if err != nil {
		return nil, err
	}
	return filterRecords(rs, f), nil
}

// Senator retrieves the full record of one senator.
func Senator(ctx context.Context, code int) (Record, error) {
	rs, err := fetchRecords(ctx, fmt.Sprintf("senador/%d.json", code), nil,
		"DetalheParlamentar", "Parlamentar")
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, apierror.New(apierror.NotFound, "no senator %d", code)
	}
	return rs[0], nil
}

// senatorSeries maps a series token to its service path and envelope keys.
var senatorSeries = map[string]struct {
	path string
	keys []string
}{
	"apartes":    {"apartes", []string{"ApartesParlamentar", "Parlamentar", "Apartes", "Aparte"}},
	"autorias":   {"autorias", []string{"MateriasAutoriaParlamentar", "Parlamentar", "Autorias", "Autoria"}},
	"cargos":     {"cargos", []string{"CargoParlamentar", "Parlamentar", "Cargos", "Cargo"}},
	"comissoes":  {"comissoes", []string{"MembroComissaoParlamentar", "Parlamentar", "MembroComissoes", "Comissao"}},
	"cursos":     {"historicoAcademico", []string{"HistoricoAcademicoParlamentar", "Parlamentar", "HistoricoAcademico", "Curso"}},
	"discursos":  {"discursos", []string{"DiscursosParlamentar", "Parlamentar", "Pronunciamentos", "Pronunciamento"}},
	"filiacoes":  {"filiacoes", []string{"FiliacaoParlamentar", "Parlamentar", "Filiacoes", "Filiacao"}},
	"liderancas": {"liderancas", []string{"LiderancaParlamentar", "Parlamentar", "Liderancas", "Lideranca"}},
	"licencas":   {"licencas", []string{"LicencaParlamentar", "Parlamentar", "Licencas", "Licenca"}},
	"mandatos":   {"mandatos", []string{"MandatoParlamentar", "Parlamentar", "Mandatos", "Mandato"}},
	"profissoes": {"profissao", []string{"ProfissaoParlamentar", "Parlamentar", "Profissoes", "Profissao"}},
	"relatorias": {"relatorias", []string{"MateriasRelatoriaParlamentar", "Parlamentar", "Relatorias", "Relatoria"}},
	"votacoes":   {"votacoes", []string{"VotacaoParlamentar", "Parlamentar", "Votacoes", "Votacao"}},
}

// SenatorSeriesTokens lists the series a SenatorSeries call accepts.
func SenatorSeriesTokens() []string {
	tokens := maps.Keys(senatorSeries)
	slices.Sort(tokens)
	return tokens
}

// SenatorSeries retrieves one sub-series of one senator: speeches,
// mandates, party affiliations and so on. An unknown series token fails
// with InvalidSelection before any network round trip; a senator with no
// records in the series is an empty list, not an error.
func SenatorSeries(ctx context.Context, code int, series string) ([]Record, error) {
	s, ok := senatorSeries[series]
	if !ok {
		return nil, apierror.New(apierror.InvalidSelection,
			"senator records have no series %q; valid series: %s",
			series, strings.Join(SenatorSeriesTokens(), ", "))
	}
	return fetchRecords(ctx, fmt.Sprintf("senador/%d/%s.json", code, s.path),
		nil, s.keys...)
}
