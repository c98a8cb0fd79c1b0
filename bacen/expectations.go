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
	"strconv"
	"strings"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/fetch"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ExpectationKind selects one resource of the market expectations API, each
// a different aggregation of the weekly Focus survey.
type ExpectationKind string

// The published expectation resources.
const (
	ExpectationsMonthly      ExpectationKind = "ExpectativaMercadoMensais"
	ExpectationsSelic        ExpectationKind = "ExpectativasMercadoSelic"
	ExpectationsQuarterly    ExpectationKind = "ExpectativasMercadoTrimestrais"
	ExpectationsAnnual       ExpectationKind = "ExpectativasMercadoAnuais"
	ExpectationsInflation12M ExpectationKind = "ExpectativasMercadoInflacao12Meses"
	ExpectationsTop5Monthly  ExpectationKind = "ExpectativasMercadoTop5Mensais"
	ExpectationsTop5Annual   ExpectationKind = "ExpectativasMercadoTop5Anuais"
	ExpectationsInstitutions ExpectationKind = "ExpectativasMercadoInstituicoes"
)

// Indicators shared by several resources.
var (
	inflationIndicators = []string{
		"IGP-DI",
		"IGP-M",
		"INPC",
		"IPA-DI",
		"IPA-M",
		"IPCA",
		"IPCA Administrados",
		"IPCA Alimentação no domicílio",
		"IPCA Bens industrializados",
		"IPCA Livres",
		"IPCA Serviços",
		"IPCA-15",
		"IPC-FIPE",
	}

	annualIndicators = []string{
		"Balança Comercial",
		"Câmbio",
		"Conta corrente",
		"Dívida bruta do governo geral",
		"Dívida líquida do setor público",
		"IGP-DI",
		"IGP-M",
		"INPC",
		"Investimento direto no país",
		"IPA-DI",
		"IPA-M",
		"IPCA",
		"IPCA Administrados",
		"IPCA Alimentação no domicílio",
		"IPCA Bens industrializados",
		"IPCA Livres",
		"IPCA Serviços",
		"IPCA-15",
		"IPC-FIPE",
		"PIB Agropecuária",
		"PIB Despesa de consumo da administração pública",
		"PIB despesa de consumo das famílias",
		"PIB Exportação de bens e serviços",
		"PIB Formação Bruta de Capital Fixo",
		"PIB Importação de bens e serviços",
		"PIB Indústria",
		"PIB Serviços",
		"PIB Total",
		"Produção industrial",
		"Resultado nominal",
		"Resultado primário",
		"Selic",
		"Taxa de desocupação",
	}

	top5Indicators = []string{"Câmbio", "IGP-DI", "IGP-M", "IPCA", "Selic"}
)

// expectationIndicators lists the indicators each resource publishes.
var expectationIndicators = map[ExpectationKind][]string{
	ExpectationsMonthly: {
		"Câmbio",
		"IGP-DI",
		"IGP-M",
		"INPC",
		"IPA-DI",
		"IPA-M",
		"IPCA",
		"IPCA Administrados",
		"IPCA Alimentação no domicílio",
		"IPCA Bens industrializados",
		"IPCA Livres",
		"IPCA Serviços",
		"IPCA-15",
		"IPC-Fipe",
		"Produção industrial",
		"Selic",
		"Taxa de desocupação",
	},
	ExpectationsSelic: {"Selic"},
	ExpectationsQuarterly: {
		"Câmbio",
		"IPCA",
		"IPCA Administrados",
		"IPCA Alimentação no domicílio",
		"IPCA Bens industrializados",
		"IPCA Livres",
		"IPCA Serviços",
		"PIB Agropecuária",
		"PIB Indústria",
		"PIB Serviços",
		"PIB Total",
		"Taxa de desocupação",
	},
	ExpectationsAnnual:       annualIndicators,
	ExpectationsInflation12M: inflationIndicators,
	ExpectationsTop5Monthly:  top5Indicators,
	ExpectationsTop5Annual:   top5Indicators,
	ExpectationsInstitutions: annualIndicators,
}

// ExpectationKinds lists the published expectation resources.
func ExpectationKinds() []ExpectationKind {
	kinds := maps.Keys(expectationIndicators)
	slices.Sort(kinds)
	return kinds
}

// Expectation is the descriptive statistics of one indicator forecast on
// one survey date. Reference identifies the forecast period of the
// calendar-referenced resources; the Selic resource references a Copom
// meeting instead.
type Expectation struct {
	Indicator   string  `json:"Indicador" required:"true"`
	Date        string  `json:"Data" required:"true"`
	Reference   string  `json:"DataReferencia"`
	Meeting     string  `json:"Reuniao"`
	Mean        float64 `json:"Media"`
	Median      float64 `json:"Mediana"`
	StdDev      float64 `json:"DesvioPadrao"`
	Min         float64 `json:"Minimo"`
	Max         float64 `json:"Maximo"`
	Respondents int     `json:"numeroRespondentes"`
	CalcBase    int     `json:"baseCalculo"`
}

var _ message.Message = &Expectation{}
var _ table.Row = Expectation{}

// InitMessage implements message.Message.
func (e *Expectation) InitMessage(js interface{}) error { return message.Init(e, js) }

// CSV implements table.Row.
func (e Expectation) CSV() []string {
	ref := e.Reference
	if ref == "" {
		ref = e.Meeting
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{e.Indicator, e.Date, ref,
		f(e.Mean), f(e.Median), f(e.StdDev), f(e.Min), f(e.Max)}
}

// ExpectationOptions narrows and orders an Expectations call.
type ExpectationOptions struct {
	Indicator string // a single indicator; "" fetches all of them
	Top       int    // maximum number of records; 0 is no limit
	OrderBy   string // ordering column, "Data" by default
	Ascending bool   // ascending rather than descending order
}

// Expectations retrieves the market forecast statistics of one resource of
// the expectations API. An unknown resource fails with InvalidCategory and
// an indicator the resource does not publish with InvalidSelection, both
// before any network round trip.
func Expectations(ctx context.Context, kind ExpectationKind, opt ExpectationOptions) ([]Expectation, error) {
	indicators, ok := expectationIndicators[kind]
	if !ok {
		kinds := make([]string, 0, len(expectationIndicators))
		for _, k := range ExpectationKinds() {
			kinds = append(kinds, string(k))
		}
		return nil, apierror.New(apierror.InvalidCategory,
			"unknown expectations resource %q; valid resources: %s",
			kind, strings.Join(kinds, ", "))
	}
	orderBy := opt.OrderBy
	if orderBy == "" {
		orderBy = "Data"
	}
	direction := "desc"
	if opt.Ascending {
		direction = "asc"
	}
	query := make(url.Values)
	query["$orderby"] = []string{orderBy + " " + direction}
	if opt.Indicator != "" {
		if !slices.Contains(indicators, opt.Indicator) {
			return nil, apierror.New(apierror.InvalidSelection,
				"%s publishes no indicator %q; valid indicators: %s",
				kind, opt.Indicator, strings.Join(indicators, ", "))
		}
		query["$filter"] = []string{fmt.Sprintf("Indicador eq '%s'", opt.Indicator)}
	}
	if opt.Top > 0 {
		query["$top"] = []string{strconv.Itoa(opt.Top)}
	}

	uri := ExpectationsURL + "/" + string(kind)
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, query, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch expectations %s", kind)
	}
	items, err := unpackValue(js, "expectations "+string(kind))
	if err != nil {
		return nil, err
	}
	res := make([]Expectation, len(items))
	for i, it := range items {
		if err := res[i].InitMessage(it); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"expectations %s: item %d", kind, i)
		}
	}
	return res, nil
}

// ExpectationsTable exports expectation statistics.
func ExpectationsTable(expectations []Expectation) *table.Table {
	tbl := table.New("indicator", "date", "reference",
		"mean", "median", "stddev", "min", "max")
	for _, e := range expectations {
		tbl.AddRow(e)
	}
	return tbl
}
