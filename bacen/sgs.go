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

package bacen

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/fetch"
)

// sgsDate is the date layout of SGS query parameters and response values.
const sgsDate = "02/01/2006"

// SeriesValue is one observation of an SGS series. Dates are "dd/MM/yyyy"
// and values decimal strings, both as returned by the service; End is only
// set for period-valued series.
type SeriesValue struct {
	Date  string `json:"data" required:"true"`
	Value string `json:"valor" required:"true"`
	End   string `json:"datafim"`
}

var _ message.Message = &SeriesValue{}
var _ table.Row = SeriesValue{}

// InitMessage implements message.Message.
func (v *SeriesValue) InitMessage(js interface{}) error { return message.Init(v, js) }

// CSV implements table.Row.
func (v SeriesValue) CSV() []string { return []string{v.Date, v.Value} }

// SeriesOptions narrows a Series call. Last selects only the N most recent
// observations; Start and End bound the observation dates. The zero value
// selects the entire series.
type SeriesOptions struct {
	Last  int
	Start time.Time
	End   time.Time
}

// Series retrieves the observations of the numbered SGS series.
func Series(ctx context.Context, code int, opt SeriesOptions) ([]SeriesValue, error) {
	uri := fmt.Sprintf("%s/dados/serie/bcdata.sgs.%d/dados", SGSURL, code)
	if opt.Last > 0 {
		uri += fmt.Sprintf("/ultimos/%d", opt.Last)
	}
	query := make(url.Values)
	if !opt.Start.IsZero() {
		query["dataInicial"] = []string{opt.Start.Format(sgsDate)}
	}
	if !opt.End.IsZero() {
		query["dataFinal"] = []string{opt.End.Format(sgsDate)}
	}
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, query, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch SGS series %d", code)
	}
	items, ok := js.([]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"SGS series %d: expected a JSON array", code)
	}
	values := make([]SeriesValue, len(items))
	for i, it := range items {
		if err := values[i].InitMessage(it); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"SGS series %d: observation %d", code, i)
		}
	}
	return values, nil
}

// SeriesTable exports series observations as a date/value table.
func SeriesTable(values []SeriesValue) *table.Table {
	tbl := table.New("date", "value")
	for _, v := range values {
		tbl.AddRow(v)
	}
	return tbl
}
