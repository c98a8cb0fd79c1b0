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
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
)

// NationalLevel is the geographic level a query defaults to when no
// locality is selected.
const NationalLevel = "N1"

// Spec selects either every code of a query dimension or an explicit list.
// The zero value selects everything and serializes to the literal token
// "all".
type Spec struct {
	codes []string
}

// All selects every code of the dimension.
func All() Spec { return Spec{} }

// Codes selects an explicit list of integer codes.
func Codes(codes ...int) Spec {
	s := Spec{codes: make([]string, len(codes))}
	for i, c := range codes {
		s.codes[i] = strconv.Itoa(c)
	}
	return s
}

// CodeStrings selects an explicit list of string codes, for period ranges
// and other non-numeric tokens.
func CodeStrings(codes ...string) Spec {
	return Spec{codes: append([]string{}, codes...)}
}

// IsAll reports whether the Spec selects everything.
func (s Spec) IsAll() bool { return len(s.codes) == 0 }

// join serializes the selection, with the given separator between explicit
// codes.
func (s Spec) join(sep string) string {
	if s.IsAll() {
		return "all"
	}
	return strings.Join(s.codes, sep)
}

// localityFilter is one geographic-level selection of a query.
type localityFilter struct {
	level string
	spec  Spec
}

// classificationFilter is one classification selection of a query.
type classificationFilter struct {
	id   int
	spec Spec
}

// Query is a builder for one SIDRA data query. Builder methods accumulate
// the selection non-destructively and never fail; the aggregate id is
// validated by Run. A Query may be re-run: every Run re-issues the request
// and may observe updated live data.
type Query struct {
	aggregate       int
	periods         Spec
	variables       Spec
	localities      []localityFilter
	classifications []classificationFilter
}

// NewQuery creates an empty query selecting all periods and all variables at
// the national level.
func NewQuery() *Query {
	return &Query{}
}

// Copy creates a deep copy of the query. It is primarily used in its builder
// methods.
func (q *Query) Copy() *Query {
	q2 := Query{aggregate: q.aggregate, periods: q.periods, variables: q.variables}
	q2.localities = append([]localityFilter{}, q.localities...)
	q2.classifications = append([]classificationFilter{}, q.classifications...)
	return &q2
}

// Aggregate sets the aggregate id. This and other builder methods always
// create a deep copy of the query, leaving the original intact.
func (q *Query) Aggregate(id int) *Query {
	q2 := q.Copy()
	q2.aggregate = id
	return q2
}

// Periods sets the period selection.
func (q *Query) Periods(s Spec) *Query {
	q2 := q.Copy()
	q2.periods = s
	return q2
}

// Variables sets the variable selection.
func (q *Query) Variables(s Spec) *Query {
	q2 := q.Copy()
	q2.variables = s
	return q2
}

// Locality adds a selection of territories at the given geographic level
// (e.g. "N3" for states). Levels serialize in the order they were added.
func (q *Query) Locality(level string, s Spec) *Query {
	q2 := q.Copy()
	q2.localities = append(q2.localities, localityFilter{level: level, spec: s})
	return q2
}

// Classification adds a selection of categories of the given classification.
// Classifications serialize in the order they were added.
func (q *Query) Classification(id int, s Spec) *Query {
	q2 := q.Copy()
	q2.classifications = append(q2.classifications,
		classificationFilter{id: id, spec: s})
	return q2
}

// URL deterministically serializes the current selection. The same
// selection state always produces the same URL string. Path lists join with
// "|", bracketed code lists with ","; an omitted locality selection is the
// national level with all territories.
func (q *Query) URL() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/%d/periodos/%s/variaveis/%s",
		URL, q.aggregate, q.periods.join("|"), q.variables.join("|"))

	localities := q.localities
	if len(localities) == 0 {
		localities = []localityFilter{{level: NationalLevel, spec: All()}}
	}
	fragments := make([]string, len(localities))
	for i, l := range localities {
		fragments[i] = l.level + "[" + l.spec.join(",") + "]"
	}
	sb.WriteString("?localidades=" + strings.Join(fragments, "|"))

	if len(q.classifications) > 0 {
		fragments = make([]string, len(q.classifications))
		for i, c := range q.classifications {
			fragments[i] = strconv.Itoa(c.id) + "[" + c.spec.join(",") + "]"
		}
		sb.WriteString("&classificacao=" + strings.Join(fragments, "|"))
	}
	return sb.String()
}

// Run executes the query: one GET against the composed URL, re-indexed into
// a Result. It fails with InvalidSelection when no aggregate id was set,
// with Transport when the round trip fails, and with MalformedResponse when
// the body is not the expected array of variable blocks. Supplied codes are
// not validated locally; invalid codes are forwarded to the service.
func (q *Query) Run(ctx context.Context) (Result, error) {
	if q.aggregate == 0 {
		return nil, apierror.New(apierror.InvalidSelection,
			"the selection has no aggregate id")
	}
	uri := q.URL()
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to query aggregate %d", q.aggregate)
	}
	blocks, ok := js.([]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"aggregate %d: expected a JSON array of variable blocks", q.aggregate)
	}
	res := make(Result, len(blocks))
	for i, b := range blocks {
		if err := res[i].InitMessage(b); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"aggregate %d: variable block %d", q.aggregate, i)
		}
	}
	logging.Infof(ctx, "SIDRA: aggregate %d returned %d variable blocks",
		q.aggregate, len(res))
	return res, nil
}
