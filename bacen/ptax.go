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
	"net/url"
	"runtime"
	"time"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/message"
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
)

// ptaxDate is the date layout of the olinda PTAX query parameters.
const ptaxDate = "01-02-2006"

// Currency is one tradeable currency of the PTAX bulletins. Type "A"
// currencies are quoted with their parity against the US dollar as a
// divisor, type "B" as a multiplier.
type Currency struct {
	Symbol string `json:"simbolo" required:"true"`
	Name   string `json:"nomeFormatado"`
	Type   string `json:"tipoMoeda"`
}

var _ message.Message = &Currency{}
var _ table.Row = Currency{}

// InitMessage implements message.Message.
func (c *Currency) InitMessage(js interface{}) error { return message.Init(c, js) }

// CSV implements table.Row.
func (c Currency) CSV() []string { return []string{c.Symbol, c.Name, c.Type} }

// Currencies lists the currencies quoted by PTAX.
func Currencies(ctx context.Context) ([]Currency, error) {
	var js interface{}
	if err := fetch.FetchJSON(ctx, PTAXURL+"/Moedas", &js, nil, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch PTAX currencies")
	}
	items, err := unpackValue(js, "PTAX currencies")
	if err != nil {
		return nil, err
	}
	currencies := make([]Currency, len(items))
	for i, it := range items {
		if err := currencies[i].InitMessage(it); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"PTAX currencies: item %d", i)
		}
	}
	return currencies, nil
}

// CurrenciesTable exports the currency list.
func CurrenciesTable(currencies []Currency) *table.Table {
	tbl := table.New("symbol", "name", "type")
	for _, c := range currencies {
		tbl.AddRow(c)
	}
	return tbl
}

// Quote is one closing bulletin of a currency: the sell rate in reais and
// the bulletin timestamp as returned by the service
// ("2021-01-08 13:09:02.871").
type Quote struct {
	Timestamp string  `json:"dataHoraCotacao" required:"true"`
	Sell      float64 `json:"cotacaoVenda" required:"true"`
}

var _ message.Message = &Quote{}

// InitMessage implements message.Message.
func (q *Quote) InitMessage(js interface{}) error { return message.Init(q, js) }

// exchangeRateQuery composes the CotacaoMoedaPeriodo call for one currency
// over [start, end], closing bulletins only.
func exchangeRateQuery(symbol string, start, end time.Time) (string, url.Values) {
	uri := PTAXURL + "/CotacaoMoedaPeriodo(moeda=@moeda,dataInicial=@dataInicial," +
		"dataFinalCotacao=@dataFinalCotacao)"
	query := make(url.Values)
	query["@moeda"] = []string{"'" + symbol + "'"}
	query["@dataInicial"] = []string{"'" + start.Format(ptaxDate) + "'"}
	query["@dataFinalCotacao"] = []string{"'" + end.Format(ptaxDate) + "'"}
	query["$filter"] = []string{"contains(tipoBoletim,'Fechamento')"}
	query["$select"] = []string{"cotacaoVenda,dataHoraCotacao"}
	return uri, query
}

// ExchangeRate retrieves the daily closing quotes of one currency over
// [start, end]. A zero start defaults to 2000-01-01, a zero end to today.
// Symbols are the three-letter codes listed by Currencies.
func ExchangeRate(ctx context.Context, symbol string, start, end time.Time) ([]Quote, error) {
	if start.IsZero() {
		start = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if end.IsZero() {
		end = time.Now()
	}
	uri, query := exchangeRateQuery(symbol, start, end)
	var js interface{}
	if err := fetch.FetchJSON(ctx, uri, &js, query, nil); err != nil {
		return nil, apierror.Annotate(err, apierror.Transport,
			"failed to fetch exchange rates for %s", symbol)
	}
	items, err := unpackValue(js, "exchange rates for "+symbol)
	if err != nil {
		return nil, err
	}
	quotes := make([]Quote, len(items))
	for i, it := range items {
		if err := quotes[i].InitMessage(it); err != nil {
			return nil, apierror.Annotate(err, apierror.MalformedResponse,
				"exchange rates for %s: quote %d", symbol, i)
		}
	}
	return quotes, nil
}

// symbolQuotes is the fan-out result for one currency.
type symbolQuotes struct {
	symbol string
	quotes []Quote
	err    error
}

// ExchangeRates retrieves closing quotes for several currencies at once,
// one request per currency issued in parallel. Any failed currency fails
// the whole call; there are no partial results.
func ExchangeRates(ctx context.Context, symbols []string, start, end time.Time) (map[string][]Quote, error) {
	f := func(symbol string) symbolQuotes {
		quotes, err := ExchangeRate(ctx, symbol, start, end)
		if err != nil {
			logging.Warningf(ctx, "failed to fetch %s: %s", symbol, err.Error())
		}
		return symbolQuotes{symbol: symbol, quotes: quotes, err: err}
	}
	pm := iterator.ParallelMap(ctx, 2*runtime.NumCPU(), iterator.FromSlice(symbols), f)
	defer iterator.Flush(pm)

	rates := make(map[string][]Quote, len(symbols))
	var firstErr error
	iterator.Reduce[symbolQuotes, int](pm, 0, func(r symbolQuotes, n int) int {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			return n
		}
		rates[r.symbol] = r.quotes
		return n + 1
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return rates, nil
}
