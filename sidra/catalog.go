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
	"strconv"
	"strings"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
)

// AggregateRow is one aggregate of the catalog together with its owning
// survey.
type AggregateRow struct {
	AggregateID   int
	AggregateName string
	SurveyID      string
	SurveyName    string
}

var _ table.Row = AggregateRow{}

// CSV implements table.Row.
func (a AggregateRow) CSV() []string {
	return []string{strconv.Itoa(a.AggregateID), a.AggregateName,
		a.SurveyID, a.SurveyName}
}

// Survey is a two-letter survey code with its display name.
type Survey struct {
	ID   string
	Name string
}

// Catalog is the flattened aggregate-to-survey catalog, in response order.
type Catalog struct {
	Aggregates []AggregateRow
}

// catalogSurvey is the JSON shape of one survey in the catalog response.
type catalogSurvey struct {
	ID         string             `json:"id" required:"true"`
	Name       string             `json:"nome" required:"true"`
	Aggregates []catalogAggregate `json:"agregados"`
}

var _ message.Message = &catalogSurvey{}

func (s *catalogSurvey) InitMessage(js interface{}) error { return message.Init(s, js) }

type catalogAggregate struct {
	ID   string `json:"id" required:"true"`
	Name string `json:"nome"`
}

var _ message.Message = &catalogAggregate{}

func (a *catalogAggregate) InitMessage(js interface{}) error { return message.Init(a, js) }

// FetchCatalog retrieves the full list of available aggregates grouped by
// survey, in a single request.
func FetchCatalog(ctx context.Context) (*Catalog, error) {
	var js interface{}
	if err := fetch.FetchJSON(ctx, URL, &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch the aggregates catalog")
	}
	surveys, ok := js.([]interface{})
	if !ok {
		return nil, apierror.New(apierror.MalformedResponse,
			"catalog: expected a JSON array of surveys")
	}
	var c Catalog
	for i, sjs := range surveys {
		var s catalogSurvey
		if err := s.InitMessage(sjs); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"catalog: survey %d", i)
		}
		for _, a := range s.Aggregates {
			id, err := strconv.Atoi(a.ID)
			if err != nil {
				return nil, apierror.Annotate(err, apierror.MalformedResponse,
					"catalog: aggregate id %q in survey %s", a.ID, s.ID)
			}
			c.Aggregates = append(c.Aggregates, AggregateRow{
				AggregateID:   id,
				AggregateName: a.Name,
				SurveyID:      s.ID,
				SurveyName:    s.Name,
			})
		}
	}
	logging.Infof(ctx, "SIDRA: catalog lists %d aggregates in %d surveys",
		len(c.Aggregates), len(surveys))
	return &c, nil
}

// Surveys returns the deduplicated survey list, in first-seen order.
func (c *Catalog) Surveys() []Survey {
	seen := make(map[string]bool)
	var surveys []Survey
	for _, a := range c.Aggregates {
		if seen[a.SurveyID] {
			continue
		}
		seen[a.SurveyID] = true
		surveys = append(surveys, Survey{ID: a.SurveyID, Name: a.SurveyName})
	}
	return surveys
}

// Filter selects catalog rows. Empty fields are not applied; the supplied
// predicates are ANDed.
type Filter struct {
	Survey     string // exact survey code
	Containing string // substring the aggregate name must contain
	Excluding  string // substring the aggregate name must not contain
}

// Filter returns the aggregates matching all supplied predicates. Substring
// matching is case-insensitive. No match is an empty list, not an error.
func (c *Catalog) Filter(f Filter) []AggregateRow {
	matched := []AggregateRow{}
	for _, a := range c.Aggregates {
		if f.Survey != "" && !strings.EqualFold(a.SurveyID, f.Survey) {
			continue
		}
		name := strings.ToUpper(a.AggregateName)
		if f.Containing != "" && !strings.Contains(name, strings.ToUpper(f.Containing)) {
			continue
		}
		if f.Excluding != "" && strings.Contains(name, strings.ToUpper(f.Excluding)) {
			continue
		}
		matched = append(matched, a)
	}
	return matched
}

// CatalogTable exports catalog rows in the order given.
func CatalogTable(rows []AggregateRow) *table.Table {
	tbl := table.New("aggregate_id", "aggregate_name", "survey_id", "survey_name")
	for _, r := range rows {
		tbl.AddRow(r)
	}
	return tbl
}
