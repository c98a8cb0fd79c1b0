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

package ipea

import (
	"context"
	"fmt"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/stockparfait/fetch"
)

// Theme is one subject grouping of the series catalog. Parent is zero for
// top-level themes.
type Theme struct {
	Code   int    `json:"TEMCODIGO" required:"true"`
	Parent int    `json:"TEMCODIGO_PAI"`
	Name   string `json:"TEMNOME"`
}

var _ message.Message = &Theme{}

// InitMessage implements message.Message.
func (t *Theme) InitMessage(js interface{}) error { return message.Init(t, js) }

// Country is one country or region series are associated with.
type Country struct {
	Code string `json:"PAICODIGO" required:"true"`
	Name string `json:"PAINOME"`
}

var _ message.Message = &Country{}

// InitMessage implements message.Message.
func (c *Country) InitMessage(js interface{}) error { return message.Init(c, js) }

// Territory is one Brazilian territorial unit of the regional series. AMC
// marks "minimum comparable areas", municipality aggregates that stay
// comparable across the municipality splits of the last decades.
type Territory struct {
	Level        string  `json:"NIVNOME"`
	Code         string  `json:"TERCODIGO" required:"true"`
	Name         string  `json:"TERNOME"`
	StandardName string  `json:"TERNOMEPADRAO"`
	Capital      bool    `json:"TERCAPITAL"`
	Area         float64 `json:"TERAREA"`
	AMC          bool    `json:"NIVAMC"`
}

var _ message.Message = &Territory{}

// InitMessage implements message.Message.
func (t *Territory) InitMessage(js interface{}) error { return message.Init(t, js) }

// TerritoryFilter narrows a Territories call to one unit. Both fields must
// be set to take effect; the service addresses a territory by the code and
// level pair.
type TerritoryFilter struct {
	Code  string
	Level string
}

// fetchList retrieves one envelope-wrapped list and initializes each item
// as a record of type T.
func fetchList[T any, PT interface {
	message.Message
	*T
}](ctx context.Context, uri, call string) ([]T, error) {
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch %s", call)
	}
	items, err := unpackValue(js, call)
	if err != nil {
		return nil, err
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

// Themes retrieves the subject groupings of the series catalog.
func Themes(ctx context.Context) ([]Theme, error) {
	return fetchList[Theme](ctx, URL+"/Temas", "themes")
}

// Countries retrieves the countries and regions of the series catalog.
func Countries(ctx context.Context) ([]Country, error) {
	return fetchList[Country](ctx, URL+"/Paises", "countries")
}

// Territories retrieves the territorial units of the regional series, all of
// them or the single unit the filter addresses. The "Municípios" level is
// spelled without the accent in the addressed form, as the service requires.
func Territories(ctx context.Context, filter TerritoryFilter) ([]Territory, error) {
	uri := URL + "/Territorios"
	if filter.Code != "" && filter.Level != "" {
		level := filter.Level
		if level == "Municípios" {
			level = "Municipios"
		}
		uri = fmt.Sprintf("%s/Territorios(TERCODIGO='%s',NIVNOME='%s')",
			URL, filter.Code, level)
	}
	return fetchList[Territory](ctx, uri, "territories")
}

// TerritorialLevels lists the territorial levels regional series are
// published at.
func TerritorialLevels() []string {
	return []string{
		"Brasil",
		"Regiões",
		"Estados",
		"Microrregiões",
		"Mesorregiões",
		"Municípios",
		"Municípios por bacia",
		"Área metropolitana",
		"Estado/RM",
		"AMC 20-00",
		"AMC 40-00",
		"AMC 60-00",
		"AMC 1872-00",
		"AMC 91-00",
		"AMC 70-00",
		"Outros Países",
	}
}
