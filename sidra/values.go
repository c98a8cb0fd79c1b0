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
	"strconv"
	"strings"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ValuesURL is the default base URL of the classic SIDRA values API. It may
// be overwritten in tests before issuing any call.
var ValuesURL = "http://api.sidra.ibge.gov.br/values"

// valuesDimension is one /n or /c path segment of a values query.
type valuesDimension struct {
	prefix string // "n" for localities, "c" for classifications
	id     int
	spec   Spec
}

// ValuesQuery is a builder for the classic values endpoint. Unlike Query it
// accepts the endpoint's relative period/variable tokens ("last", "first n",
// "all", "allxp") and returns a flat table rather than a nested series tree.
type ValuesQuery struct {
	tableID    int
	periods    Spec
	variables  Spec
	dimensions []valuesDimension
	extinct    bool // include extinct federation states
	decimals   int  // -1 = per-variable default
}

// NewValuesQuery creates a query for one table of the values endpoint,
// selecting the last period, all non-percent variables and the national
// level by default.
func NewValuesQuery(tableID int) *ValuesQuery {
	return &ValuesQuery{tableID: tableID, decimals: -1}
}

// Copy creates a deep copy of the query for the builder methods.
func (q *ValuesQuery) Copy() *ValuesQuery {
	q2 := *q
	q2.dimensions = append([]valuesDimension{}, q.dimensions...)
	return &q2
}

// Periods sets the period selection. Relative tokens such as "last 12" pass
// through verbatim via CodeStrings.
func (q *ValuesQuery) Periods(s Spec) *ValuesQuery {
	q2 := q.Copy()
	q2.periods = s
	return q2
}

// Variables sets the variable selection.
func (q *ValuesQuery) Variables(s Spec) *ValuesQuery {
	q2 := q.Copy()
	q2.variables = s
	return q2
}

// Locality adds a territory selection at the given numeric geographic level
// (1 = national, 3 = states, 6 = municipalities, ...).
func (q *ValuesQuery) Locality(level int, s Spec) *ValuesQuery {
	q2 := q.Copy()
	q2.dimensions = append(q2.dimensions, valuesDimension{"n", level, s})
	return q2
}

// Classification adds a category selection of the given classification.
func (q *ValuesQuery) Classification(id int, s Spec) *ValuesQuery {
	q2 := q.Copy()
	q2.dimensions = append(q2.dimensions, valuesDimension{"c", id, s})
	return q2
}

// ExtinctStates includes the extinct federation states (Fernando de Noronha,
// Guanabara) when the table carries them.
func (q *ValuesQuery) ExtinctStates() *ValuesQuery {
	q2 := q.Copy()
	q2.extinct = true
	return q2
}

// Decimals fixes the number of decimal places of the returned values, 0-9.
func (q *ValuesQuery) Decimals(n int) *ValuesQuery {
	q2 := q.Copy()
	q2.decimals = n
	return q2
}

// URL deterministically serializes the query. Code lists join with ","; an
// empty period selection is the token "last" and an empty variable
// selection the token "allxp" (every variable except percentages).
func (q *ValuesQuery) URL() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/t/%d", ValuesURL, q.tableID)

	periods := "last"
	if !q.periods.IsAll() {
		periods = q.periods.join(",")
	}
	variables := "allxp"
	if !q.variables.IsAll() {
		variables = q.variables.join(",")
	}
	fmt.Fprintf(&sb, "/p/%s/v/%s", periods, variables)

	dimensions := q.dimensions
	if len(dimensions) == 0 {
		dimensions = []valuesDimension{{"n", 1, All()}}
	}
	for _, d := range dimensions {
		fmt.Fprintf(&sb, "/%s%d/%s", d.prefix, d.id, d.spec.join(","))
	}

	extinct := "n"
	if q.extinct {
		extinct = "y"
	}
	decimals := "s"
	if q.decimals >= 0 {
		decimals = strconv.Itoa(q.decimals)
	}
	fmt.Fprintf(&sb, "/u/%s/d/%s", extinct, decimals)
	return sb.String()
}

// valuesColumnRank orders column ids the way the service lays out its
// header row: territory code and name, measurement unit code and name, the
// value, then the D1..Dn code/name pairs of the query dimensions. Unknown
// ids go last.
func valuesColumnRank(id string) int {
	switch id {
	case "NC":
		return 0
	case "NN":
		return 1
	case "MC":
		return 2
	case "MN":
		return 3
	case "V":
		return 4
	}
	if len(id) >= 3 && id[0] == 'D' {
		last := id[len(id)-1]
		if n, err := strconv.Atoi(id[1 : len(id)-1]); err == nil && n > 0 {
			switch last {
			case 'C':
				return 3 + 2*n
			case 'N':
				return 4 + 2*n
			}
		}
	}
	return 1 << 30
}

// Run executes the query and tabulates the response. The endpoint returns
// an array whose first element maps column ids to column names and whose
// remaining elements are the value rows; columns keep the layout of the
// service's header row, with any unknown column ids appended at the end.
func (q *ValuesQuery) Run(ctx context.Context) (*table.Table, error) {
	uri := q.URL()
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to query values of table %d", q.tableID)
	}
	rows, ok := js.([]interface{})
	if !ok || len(rows) == 0 {
		return nil, apierror.New(apierror.MalformedResponse,
			"values of table %d: expected a non-empty JSON array", q.tableID)
	}
	header, err := valuesRowMap(rows[0])
	if err != nil {
		return nil, apierror.Annotate(err, apierror.MalformedResponse,
			"values of table %d: header row", q.tableID)
	}
	columns := maps.Keys(header)
	slices.SortFunc(columns, func(a, b string) bool {
		ra, rb := valuesColumnRank(a), valuesColumnRank(b)
		if ra != rb {
			return ra < rb
		}
		return a < b
	})

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = header[c]
	}
	tbl := table.New(names...)
	for i, rjs := range rows[1:] {
		r, err := valuesRowMap(rjs)
		if err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"values of table %d: row %d", q.tableID, i+1)
		}
		cells := make(valuesRow, len(columns))
		for j, c := range columns {
			cells[j] = r[c]
		}
		tbl.AddRow(cells)
	}
	return tbl, nil
}

// valuesRow is one tabulated row of a values response.
type valuesRow []string

var _ table.Row = valuesRow{}

// CSV implements table.Row.
func (r valuesRow) CSV() []string { return r }

// valuesRowMap checks that one response element is a string-to-string
// object.
func valuesRowMap(js interface{}) (map[string]string, error) {
	obj, ok := js.(map[string]interface{})
	if !ok {
		return nil, errors.Reason("not a JSON object: %v", js)
	}
	row := make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Reason("column %q is not a string: %v", k, v)
		}
		row[k] = s
	}
	return row, nil
}
