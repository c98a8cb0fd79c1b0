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
	"net/url"
	"strings"
)

// SeriesInfo is the root record series every resource accepts: the item
// itself rather than one of its sub-lists.
const SeriesInfo = "informacoes"

// Series tokens each resource's detail call accepts.
var (
	BlockSeries       = []string{SeriesInfo}
	DeputySeries      = []string{SeriesInfo, "despesas", "discursos", "eventos", "frentes", "orgaos"}
	EventSeries       = []string{SeriesInfo, "deputados", "orgaos", "pauta", "votacoes"}
	FrontSeries       = []string{SeriesInfo, "membros"}
	LegislatureSeries = []string{SeriesInfo, "mesa"}
	BodySeries        = []string{SeriesInfo, "eventos", "membros", "votacoes"}
	PartySeries       = []string{SeriesInfo, "membros"}
	PropositionSeries = []string{SeriesInfo, "autores", "relacionadas", "temas", "tramitacoes", "votacoes"}
	VotingSeries      = []string{SeriesInfo, "orientacoes", "votos"}
)

// Blocks lists the party blocks of the current legislature.
func Blocks(ctx context.Context) ([]Record, error) { return list(ctx, "blocos", nil) }

// Block retrieves one series of one party block.
func Block(ctx context.Context, id int, series string) ([]Record, error) {
	return detail(ctx, "blocos", id, series, BlockSeries)
}

// Deputies lists the deputies currently in office.
func Deputies(ctx context.Context) ([]Record, error) { return list(ctx, "deputados", nil) }

// Deputy retrieves one series of one deputy: the root record, or their
// expenses, speeches, events, parliamentary fronts or bodies.
func Deputy(ctx context.Context, id int, series string) ([]Record, error) {
	return detail(ctx, "deputados", id, series, DeputySeries)
}

// Events lists past and scheduled events of the chamber bodies.
func Events(ctx context.Context) ([]Record, error) { return list(ctx, "eventos", nil) }

// Event retrieves one series of one event.
func Event(ctx context.Context, id int, series string) ([]Record, error) {
	return detail(ctx, "eventos", id, series, EventSeries)
}

// Fronts lists the parliamentary fronts.
func Fronts(ctx context.Context) ([]Record, error) { return list(ctx, "frentes", nil) }

// Front retrieves one series of one parliamentary front.
func Front(ctx context.Context, id int, series string) ([]Record, error) {
	return detail(ctx, "frentes", id, series, FrontSeries)
}

// Legislatures lists the mandate periods of the chamber.
func Legislatures(ctx context.Context) ([]Record, error) { return list(ctx, "legislaturas", nil) }

// Legislature retrieves one series of one legislature.
func Legislature(ctx context.Context, id int, series string) ([]Record, error) {
	return detail(ctx, "legislaturas", id, series, LegislatureSeries)
}

// Bodies lists the commissions and other legislative bodies.
func Bodies(ctx context.Context) ([]Record, error) { return list(ctx, "orgaos", nil) }

// Body retrieves one series of one legislative body.
func Body(ctx context.Context, id int, series string) ([]Record, error) {
	return detail(ctx, "orgaos", id, series, BodySeries)
}

// Parties lists the parties that have or had deputies in office.
func Parties(ctx context.Context) ([]Record, error) { return list(ctx, "partidos", nil) }

// Party retrieves one series of one party.
func Party(ctx context.Context, id int, series string) ([]Record, error) {
	return detail(ctx, "partidos", id, series, PartySeries)
}

// Propositions lists the legislative propositions.
func Propositions(ctx context.Context) ([]Record, error) { return list(ctx, "proposicoes", nil) }

// Proposition retrieves one series of one proposition.
func Proposition(ctx context.Context, id int, series string) ([]Record, error) {
	return detail(ctx, "proposicoes", id, series, PropositionSeries)
}

// Votings lists the chamber votings.
func Votings(ctx context.Context) ([]Record, error) { return list(ctx, "votacoes", nil) }

// Voting retrieves one series of one voting.
func Voting(ctx context.Context, id int, series string) ([]Record, error) {
	return detail(ctx, "votacoes", id, series, VotingSeries)
}

// DeputyFilter narrows a FilterDeputies call. Sex ("F" or "M"), State (a
// two-letter UF code) and Party become query parameters of the service;
// Containing and Excluding filter the returned names case-insensitively.
type DeputyFilter struct {
	Sex        string
	State      string
	Party      string
	Containing string
	Excluding  string
}

// FilterDeputies lists the deputies matching the filter. All predicates are
// ANDed; zero matches is an empty list, not an error.
func FilterDeputies(ctx context.Context, f DeputyFilter) ([]Record, error) {
	query := make(url.Values)
	if f.Sex != "" {
		query["siglaSexo"] = []string{f.Sex}
	}
	if f.Party != "" {
		query["siglaPartido"] = []string{f.Party}
	}
	if f.State != "" {
		query["siglaUf"] = []string{f.State}
	}
	deputies, err := list(ctx, "deputados", query)
	if err != nil {
		return nil, err
	}
	containing := strings.ToUpper(f.Containing)
	excluding := strings.ToUpper(f.Excluding)
	res := []Record{}
	for _, r := range deputies {
		name := strings.ToUpper(r.String("nome"))
		if containing != "" && !strings.Contains(name, containing) {
			continue
		}
		if excluding != "" && strings.Contains(name, excluding) {
			continue
		}
		res = append(res, r)
	}
	return res, nil
}
