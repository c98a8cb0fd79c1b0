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
	"bytes"
	"context"
	"testing"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestValues(t *testing.T) {
	Convey("ValuesQuery URL composition", t, func() {
		Convey("defaults: last period, allxp variables, national level", func() {
			So(NewValuesQuery(1419).URL(), ShouldEqual,
				ValuesURL+"/t/1419/p/last/v/allxp/n1/all/u/n/d/s")
		})

		Convey("explicit selections keep supply order", func() {
			q := NewValuesQuery(1419).
				Periods(CodeStrings("201912", "202001")).
				Variables(Codes(63, 69)).
				Locality(3, Codes(33, 35)).
				Classification(315, Codes(7169)).
				ExtinctStates().
				Decimals(2)
			So(q.URL(), ShouldEqual, ValuesURL+
				"/t/1419/p/201912,202001/v/63,69/n3/33,35/c315/7169/u/y/d/2")
		})

		Convey("builder methods are nondestructive", func() {
			q := NewValuesQuery(1419)
			q2 := q.Variables(Codes(63))
			So(q.URL(), ShouldContainSubstring, "/v/allxp/")
			So(q2.URL(), ShouldContainSubstring, "/v/63/")
		})
	})

	Convey("Run tabulates the response", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		ctx := fetch.UseClient(context.Background(), server.Client())
		ValuesURL = server.URL()

		Convey("header row first, columns in the service layout", func() {
			server.ResponseBody = []string{`[
			  {"MN": "Unidade de Medida", "MC": "Unidade de Medida (Código)",
			   "D1N": "Brasil", "D1C": "Brasil (Código)",
			   "D2N": "Mês", "D2C": "Mês (Código)",
			   "V": "Valor",
			   "NN": "Nível Territorial", "NC": "Nível Territorial (Código)"},
			  {"MN": "%", "MC": "2", "D1N": "Brasil", "D1C": "1",
			   "D2N": "dezembro 2019", "D2C": "201912", "V": "1.15",
			   "NN": "Brasil", "NC": "1"},
			  {"MN": "%", "MC": "2", "D1N": "Brasil", "D1C": "1",
			   "D2N": "janeiro 2020", "D2C": "202001", "V": "0.21",
			   "NN": "Brasil", "NC": "1"}
			]`}
			tbl, err := NewValuesQuery(1419).Run(ctx)
			So(err, ShouldBeNil)
			So(tbl.Header, ShouldResemble, []string{
				"Nível Territorial (Código)", "Nível Territorial",
				"Unidade de Medida (Código)", "Unidade de Medida", "Valor",
				"Brasil (Código)", "Brasil", "Mês (Código)", "Mês"})

			var buf bytes.Buffer
			So(tbl.WriteCSV(&buf, table.Params{NoHeader: true}), ShouldBeNil)
			So(buf.String(), ShouldEqual,
				"1,Brasil,2,%,1.15,1,Brasil,201912,dezembro 2019\n"+
					"1,Brasil,2,%,0.21,1,Brasil,202001,janeiro 2020\n")
		})

		Convey("unknown column ids go last, ordered by id", func() {
			server.ResponseBody = []string{`[
			  {"ZB": "Extra B", "V": "Valor", "ZA": "Extra A"},
			  {"ZB": "b", "V": "1", "ZA": "a"}
			]`}
			tbl, err := NewValuesQuery(1419).Run(ctx)
			So(err, ShouldBeNil)
			So(tbl.Header, ShouldResemble, []string{"Valor", "Extra A", "Extra B"})
		})

		Convey("an empty array is MalformedResponse", func() {
			server.ResponseBody = []string{`[]`}
			_, err := NewValuesQuery(1419).Run(ctx)
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
		})

		Convey("a non-string cell is MalformedResponse", func() {
			server.ResponseBody = []string{`[{"V": "Valor"}, {"V": 1.15}]`}
			_, err := NewValuesQuery(1419).Run(ctx)
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
		})
	})
}
