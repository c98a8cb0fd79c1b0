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
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
)

// SeriesMeta is the catalog entry of one Ipeadata series. Status is "A" for
// series still updated and "I" for discontinued ones; regional and social
// series carry neither.
type SeriesMeta struct {
	Code          string `json:"SERCODIGO" required:"true"`
	Name          string `json:"SERNOME"`
	Comment       string `json:"SERCOMENTARIO"`
	Updated       string `json:"SERATUALIZACAO"`
	Base          string `json:"BASNOME"`
	SourceAcronym string `json:"FNTSIGLA"`
	SourceName    string `json:"FNTNOME"`
	SourceURL     string `json:"FNTURL"`
	Frequency     string `json:"PERNOME"`
	Unit          string `json:"UNINOME"`
	Multiplier    string `json:"MULNOME"`
	Status        string `json:"SERSTATUS"`
	Theme         int    `json:"TEMCODIGO"`
	Country       string `json:"PAICODIGO"`
	Numeric       bool   `json:"SERNUMERICA"`
}

var _ message.Message = &SeriesMeta{}
var _ table.Row = SeriesMeta{}

// InitMessage implements message.Message.
func (m *SeriesMeta) InitMessage(js interface{}) error { return message.Init(m, js) }

// Active reports whether the series is still updated.
func (m SeriesMeta) Active() bool { return m.Status == "A" }

// CSV implements table.Row.
func (m SeriesMeta) CSV() []string {
	return []string{m.Code, m.Name, m.Frequency, m.Unit, m.SourceAcronym, m.Status}
}

// Series retrieves the full series catalog, several thousand entries.
func Series(ctx context.Context) ([]SeriesMeta, error) {
	uri := URL + "/Metadados"
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch the series catalog")
	}
	items, err := unpackValue(js, "series catalog")
	if err != nil {
		return nil, err
	}
	series := make([]SeriesMeta, len(items))
	for i, it := range items {
		if err := series[i].InitMessage(it); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"series catalog: entry %d", i)
		}
	}
	logging.Infof(ctx, "IPEA: catalog lists %d series", len(series))
	return series, nil
}

// SeriesTable exports catalog entries in the order given.
func SeriesTable(series []SeriesMeta) *table.Table {
	tbl := table.New("code", "name", "frequency", "unit", "source", "status")
	for _, m := range series {
		tbl.AddRow(m)
	}
	return tbl
}

// FetchSeriesMeta retrieves the catalog entry of one series. An unknown code
// fails with NotFound.
func FetchSeriesMeta(ctx context.Context, code string) (*SeriesMeta, error) {
	uri := fmt.Sprintf("%s/Metadados('%s')", URL, code)
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch metadata of series %s", code)
	}
	items, err := unpackValue(js, "metadata of series "+code)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apierror.New(apierror.NotFound, "no such series: %s", code)
	}
	var m SeriesMeta
	if err := m.InitMessage(items[0]); err != nil {
		return nil, apierror.Annotate(err, apierror.MalformedResponse,
			"metadata of series %s", code)
	}
	return &m, nil
}

// SeriesValue is one observation of a series. Dates are ISO 8601 timestamps
// with a timezone offset ("1996-01-01T00:00:00-02:00"); Level and Territory
// are only set for regional series.
type SeriesValue struct {
	Code      string  `json:"SERCODIGO"`
	Date      string  `json:"VALDATA" required:"true"`
	Value     float64 `json:"VALVALOR"`
	Level     string  `json:"NIVNOME"`
	Territory string  `json:"TERCODIGO"`
}

var _ message.Message = &SeriesValue{}

// InitMessage implements message.Message.
func (v *SeriesValue) InitMessage(js interface{}) error { return message.Init(v, js) }

// SeriesValues retrieves the observations of one series. A null VALVALOR
// (an observation not yet published) stays zero.
func SeriesValues(ctx context.Context, code string) ([]SeriesValue, error) {
	uri := fmt.Sprintf("%s/Metadados(SERCODIGO='%s')/Valores", URL, code)
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch values of series %s", code)
	}
	items, err := unpackValue(js, "values of series "+code)
	if err != nil {
		return nil, err
	}
	values := make([]SeriesValue, len(items))
	for i, it := range items {
		if err := values[i].InitMessage(it); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"values of series %s: observation %d", code, i)
		}
	}
	return values, nil
}
