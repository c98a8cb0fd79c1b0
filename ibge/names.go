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

package ibge

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/stockparfait/fetch"
	"golang.org/x/exp/slices"
)

// NamePeriod is the frequency of a name in one decade of birth. Periods
// come in the service's interval notation, "[1990,2000[" or "1930[" for
// the open first decade.
type NamePeriod struct {
	Period    string `json:"periodo" required:"true"`
	Frequency int    `json:"frequencia" required:"true"`
}

var _ message.Message = &NamePeriod{}

// InitMessage implements message.Message.
func (p *NamePeriod) InitMessage(js interface{}) error { return message.Init(p, js) }

// NameFrequency is the census birth frequency of one first name per decade.
type NameFrequency struct {
	Name     string       `json:"nome" required:"true"`
	Sex      string       `json:"sexo"`
	Locality string       `json:"localidade"`
	Periods  []NamePeriod `json:"res" required:"true"`
}

var _ message.Message = &NameFrequency{}

// InitMessage implements message.Message.
func (f *NameFrequency) InitMessage(js interface{}) error { return message.Init(f, js) }

// NamesOptions narrows a Names call. Sex is "F" or "M"; Locality is an
// IBGE locality code (a state or municipality), zero meaning the whole
// country.
type NamesOptions struct {
	Sex      string
	Locality int
}

// nameItems fetches one Nomes call returning an array payload and
// initializes each item.
func nameItems[T any, PT interface {
	message.Message
	*T
}](ctx context.Context, uri string, query url.Values, call string) ([]T, error) {
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, query, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch %s", call)
	}
	items, ok := js.([]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"%s: expected a JSON array", call)
	}
	res := make([]T, len(items))
	for i, it := range items {
		if err := PT(&res[i]).InitMessage(it); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"%s: item %d", call, i)
		}
	}
	return res, nil
}

// Names retrieves the birth frequency per decade of the given first names,
// one NameFrequency per name, as counted by the demographic censuses.
func Names(ctx context.Context, names []string, opt NamesOptions) ([]NameFrequency, error) {
	if len(names) == 0 {
		return nil, apierror.New(apierror.InvalidSelection,
			"at least one name is required")
	}
	query := make(url.Values)
	if opt.Sex != "" {
		query["sexo"] = []string{strings.ToUpper(opt.Sex)}
	}
	if opt.Locality > 0 {
		query["localidade"] = []string{strconv.Itoa(opt.Locality)}
	}
	uri := NamesURL + "/" + strings.Join(names, "|")
	return nameItems[NameFrequency](ctx, uri, query, "name frequencies")
}

// StateStats is the frequency of a name in one federation unit: the unit
// population, the name count and the count per 100k inhabitants.
type StateStats struct {
	Population int     `json:"populacao" required:"true"`
	Frequency  int     `json:"frequencia" required:"true"`
	Proportion float64 `json:"proporcao" required:"true"`
}

var _ message.Message = &StateStats{}

// InitMessage implements message.Message.
func (s *StateStats) InitMessage(js interface{}) error { return message.Init(s, js) }

// StateFrequency is the frequency of one name in one federation unit,
// keyed by the unit's IBGE code.
type StateFrequency struct {
	Locality string       `json:"localidade" required:"true"`
	Stats    []StateStats `json:"res" required:"true"`
}

var _ message.Message = &StateFrequency{}

// InitMessage implements message.Message.
func (f *StateFrequency) InitMessage(js interface{}) error { return message.Init(f, js) }

// NamesByState retrieves the frequency of one first name per federation
// unit, ordered by the unit code.
func NamesByState(ctx context.Context, name string) ([]StateFrequency, error) {
	if name == "" {
		return nil, apierror.New(apierror.InvalidSelection, "a name is required")
	}
	query := url.Values{"groupBy": {"UF"}}
	res, err := nameItems[StateFrequency](ctx, NamesURL+"/"+name, query,
		"name frequencies by state")
	if err != nil {
		return nil, err
	}
	slices.SortFunc(res, func(a, b StateFrequency) bool {
		return a.Locality < b.Locality
	})
	return res, nil
}

// RankingEntry is one name of a frequency ranking.
type RankingEntry struct {
	Ranking   int    `json:"ranking" required:"true"`
	Name      string `json:"nome" required:"true"`
	Frequency int    `json:"frequencia" required:"true"`
}

var _ message.Message = &RankingEntry{}

// InitMessage implements message.Message.
func (e *RankingEntry) InitMessage(js interface{}) error { return message.Init(e, js) }

// rankingEnvelope is the single element of a ranking response.
type rankingEnvelope struct {
	Entries []RankingEntry `json:"res" required:"true"`
}

var _ message.Message = &rankingEnvelope{}

func (r *rankingEnvelope) InitMessage(js interface{}) error { return message.Init(r, js) }

// RankingOptions narrows a NamesRanking call. Decade is a year multiple of
// 10 such as 1990, zero ranking over every census; Sex and Locality as in
// NamesOptions.
type RankingOptions struct {
	Decade   int
	Sex      string
	Locality int
}

// NamesRanking retrieves the most frequent first names, over everything or
// narrowed by the options.
func NamesRanking(ctx context.Context, opt RankingOptions) ([]RankingEntry, error) {
	if opt.Decade != 0 && opt.Decade%10 != 0 {
		return nil, apierror.New(apierror.InvalidSelection,
			"decade must be a year multiple of 10, got %d", opt.Decade)
	}
	query := make(url.Values)
	if opt.Decade != 0 {
		query["decada"] = []string{strconv.Itoa(opt.Decade)}
	}
	if opt.Sex != "" {
		query["sexo"] = []string{strings.ToUpper(opt.Sex)}
	}
	if opt.Locality > 0 {
		query["localidade"] = []string{strconv.Itoa(opt.Locality)}
	}
	envelopes, err := nameItems[rankingEnvelope](ctx, NamesURL+"/ranking",
		query, "name ranking")
	if err != nil {
		return nil, err
	}
	if len(envelopes) == 0 {
		return nil, apierror.New(apierror.NotFound, "empty name ranking")
	}
	return envelopes[0].Entries, nil
}
