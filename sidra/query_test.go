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
	"net/url"
	"testing"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuery(t *testing.T) {
	Convey("Query builds nondestructively", t, func() {
		q := NewQuery().Aggregate(1419)
		q2 := q.Periods(Codes(2019)).Variables(Codes(63))
		So(q.URL(), ShouldContainSubstring, "/1419/periodos/all/variaveis/all")
		So(q2.URL(), ShouldContainSubstring, "/1419/periodos/2019/variaveis/63")
	})

	Convey("URL composition is deterministic", t, func() {
		build := func() *Query {
			return NewQuery().
				Aggregate(2991).
				Periods(Codes(2017, 2018)).
				Variables(Codes(225, 1000225)).
				Locality("N3", Codes(33, 35)).
				Classification(2, Codes(4, 5)).
				Classification(240, All())
		}
		So(build().URL(), ShouldEqual, build().URL())

		Convey("and embeds all five dimensions", func() {
			So(build().URL(), ShouldEqual, URL+
				"/2991/periodos/2017|2018/variaveis/225|1000225"+
				"?localidades=N3[33,35]&classificacao=2[4,5]|240[all]")
		})
	})

	Convey("omitted localities default to the national level", t, func() {
		q := NewQuery().Aggregate(1301)
		explicit := q.Locality(NationalLevel, All())
		So(q.URL(), ShouldEqual, explicit.URL())
		So(q.URL(), ShouldEndWith, "?localidades=N1[all]")
	})

	Convey("locality and classification fragments keep supply order", t, func() {
		q := NewQuery().Aggregate(2991).
			Locality("N6", Codes(3304557)).
			Locality("N3", All())
		So(q.URL(), ShouldEndWith, "?localidades=N6[3304557]|N3[all]")
	})

	Convey("Run", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		ctx := fetch.UseClient(context.Background(), server.Client())
		URL = server.URL()

		Convey("fails with InvalidSelection before any round trip", func() {
			_, err := NewQuery().Periods(Codes(2018)).Run(ctx)
			So(apierror.Is(err, apierror.InvalidSelection), ShouldBeTrue)
		})

		Convey("re-indexes a two-variable response", func() {
			server.ResponseBody = []string{`[
			  {"id": 225, "variavel": "População residente", "unidade": "Pessoas",
			   "resultados": [
			     {"classificacoes": [
			        {"id": 2, "nome": "Sexo", "categoria": {"4": "Homens"}}],
			      "series": [
			        {"localidade": {"id": "33", "nome": "Rio de Janeiro",
			          "nivel": {"id": "N3", "nome": "Unidade da Federação"}},
			         "serie": {"2017": "8234000", "2018": "8282000"}},
			        {"localidade": {"id": "35", "nome": "São Paulo",
			          "nivel": {"id": "N3", "nome": "Unidade da Federação"}},
			         "serie": {"2018": "21893000"}}]}]},
			  {"id": 1000225, "variavel": "População residente - percentual",
			   "unidade": "%",
			   "resultados": [
			     {"classificacoes": [],
			      "series": [
			        {"localidade": {"id": "33", "nome": "Rio de Janeiro",
			          "nivel": {"id": "N3", "nome": "Unidade da Federação"}},
			         "serie": {"2017": "49.2"}}]}]}
			]`}
			q := NewQuery().
				Aggregate(2991).
				Periods(Codes(2017, 2018)).
				Variables(Codes(225, 1000225)).
				Locality("N3", Codes(33, 35)).
				Classification(2, Codes(4, 5)).
				Classification(240, All())
			res, err := q.Run(ctx)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual,
				"/2991/periodos/2017|2018/variaveis/225|1000225")
			So(server.RequestQuery, ShouldResemble, url.Values{
				"localidades":   []string{"N3[33,35]"},
				"classificacao": []string{"2[4,5]|240[all]"},
			})

			So(len(res), ShouldEqual, 2)
			So(res[0].ID, ShouldEqual, 225)
			So(res[1].ID, ShouldEqual, 1000225)
			So(res.Variable(1000225), ShouldNotBeNil)
			So(res.Variable(999), ShouldBeNil)

			Convey("series values are strings keyed by period", func() {
				So(res[0].Results[0].Series[0].Values["2018"], ShouldEqual, "8282000")
				So(res[0].Results[0].Series[0].Periods(), ShouldResemble,
					[]string{"2017", "2018"})
			})

			Convey("sparse periods stay absent, not zero-filled", func() {
				values := res[0].Results[0].Series[1].Values
				So(values, ShouldResemble, map[string]string{"2018": "21893000"})
			})

			Convey("a missing classification dimension is an empty slice", func() {
				So(res[1].Results[0].Classifications, ShouldBeEmpty)
				So(res[0].Results[0].Classifications[0].Category,
					ShouldResemble, map[string]string{"4": "Homens"})
			})

			Convey("re-running re-issues the request", func() {
				server.ResponseBody = []string{`[]`}
				res2, err := q.Run(ctx)
				So(err, ShouldBeNil)
				So(res2, ShouldBeEmpty)
			})
		})

		Convey("a non-array body is MalformedResponse", func() {
			server.ResponseBody = []string{`{"erro": "inesperado"}`}
			_, err := NewQuery().Aggregate(2991).Run(ctx)
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
		})

		Convey("a variable block without an id is MalformedResponse", func() {
			server.ResponseBody = []string{`[{"variavel": "x", "resultados": []}]`}
			_, err := NewQuery().Aggregate(2991).Run(ctx)
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
		})
	})
}
