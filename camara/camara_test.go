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

package camara

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLists(t *testing.T) {
	Convey("list endpoints", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		ctx := fetch.UseClient(context.Background(), server.Client())
		URL = server.URL()

		Convey("Deputies concatenates pages following rel=next", func() {
			page1 := fmt.Sprintf(`{
			  "dados": [
			    {"id": 1, "nome": "Ana", "siglaPartido": "AA",
			     "uri": "x", "uriPartido": "y"},
			    {"id": 2, "nome": "Bruno", "siglaPartido": "BB"}
			  ],
			  "links": [
			    {"rel": "self", "href": "%s/deputados"},
			    {"rel": "next", "href": "%s/deputados?pagina=2"}
			  ]}`, server.URL(), server.URL())
			page2 := `{
			  "dados": [{"id": 3, "nome": "Carla", "siglaPartido": "CC"}],
			  "links": [{"rel": "last", "href": "x"}]}`
			server.ResponseBody = []string{page1, page2}

			deputies, err := Deputies(ctx)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/deputados")
			So(server.RequestQuery, ShouldResemble, url.Values{
				"pagina": []string{"2"},
			})
			So(deputies, ShouldHaveLength, 3)
			So(deputies[2].String("nome"), ShouldEqual, "Carla")

			Convey("and drops the uri* keys", func() {
				So(deputies[0], ShouldResemble, Record{
					"id": 1.0, "nome": "Ana", "siglaPartido": "AA"})
			})
		})

		Convey("a next link repeating itself is MalformedResponse", func() {
			page := fmt.Sprintf(`{
			  "dados": [{"id": 1, "nome": "Ana"}],
			  "links": [{"rel": "next", "href": "%s/deputados?pagina=2"}]}`,
				server.URL())
			server.ResponseBody = []string{page, page, page}

			_, err := Deputies(ctx)
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "paging did not terminate")
		})

		Convey("FilterDeputies", func() {
			body := `{"dados": [
			  {"id": 1, "nome": "Ana Souza", "uri": "x"},
			  {"id": 2, "nome": "Mariana Lima"},
			  {"id": 3, "nome": "Marina Costa"}
			], "links": []}`

			Convey("forwards sex, state and party as query parameters", func() {
				server.ResponseBody = []string{body}
				_, err := FilterDeputies(ctx, DeputyFilter{
					Sex:   "F",
					State: "RJ",
					Party: "XX",
				})
				So(err, ShouldBeNil)
				So(server.RequestQuery, ShouldResemble, url.Values{
					"siglaSexo":    []string{"F"},
					"siglaUf":      []string{"RJ"},
					"siglaPartido": []string{"XX"},
				})
			})

			Convey("filters names case-insensitively", func() {
				server.ResponseBody = []string{body}
				deputies, err := FilterDeputies(ctx, DeputyFilter{
					Containing: "mari",
					Excluding:  "LIMA",
				})
				So(err, ShouldBeNil)
				So(deputies, ShouldHaveLength, 1)
				So(deputies[0].String("nome"), ShouldEqual, "Marina Costa")
			})

			Convey("zero matches is an empty list, not an error", func() {
				server.ResponseBody = []string{body}
				deputies, err := FilterDeputies(ctx, DeputyFilter{Containing: "zz"})
				So(err, ShouldBeNil)
				So(deputies, ShouldNotBeNil)
				So(deputies, ShouldHaveLength, 0)
			})
		})

		Convey("a body without the envelope is MalformedResponse", func() {
			server.ResponseBody = []string{`[{"id": 1}]`}
			_, err := Parties(ctx)
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
		})

		Convey("a non-array payload is MalformedResponse", func() {
			server.ResponseBody = []string{`{"dados": {"id": 1}, "links": []}`}
			_, err := Parties(ctx)
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
		})
	})
}

func TestDetails(t *testing.T) {
	Convey("detail endpoints", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		ctx := fetch.UseClient(context.Background(), server.Client())
		URL = server.URL()

		Convey("the root series is the item itself", func() {
			server.ResponseBody = []string{`{
			  "dados": {"id": 204554, "nomeCivil": "Ana Souza", "uri": "x"},
			  "links": []}`}
			records, err := Deputy(ctx, 204554, SeriesInfo)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/deputados/204554")
			So(records, ShouldResemble, []Record{
				{"id": 204554.0, "nomeCivil": "Ana Souza"}})
		})

		Convey("an empty series defaults to the root record", func() {
			server.ResponseBody = []string{`{"dados": {"id": 1}, "links": []}`}
			records, err := Party(ctx, 1, "")
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/partidos/1")
			So(records, ShouldHaveLength, 1)
		})

		Convey("a sub-series is fetched as its own path", func() {
			server.ResponseBody = []string{`{
			  "dados": [
			    {"ano": 2023, "tipoDespesa": "PASSAGEM AÉREA", "valorLiquido": 1500.5},
			    {"ano": 2023, "tipoDespesa": "COMBUSTÍVEL", "valorLiquido": 300.0}
			  ], "links": []}`}
			records, err := Deputy(ctx, 204554, "despesas")
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/deputados/204554/despesas")
			So(records, ShouldHaveLength, 2)
			So(records[1].String("tipoDespesa"), ShouldEqual, "COMBUSTÍVEL")
		})

		Convey("an unknown series is InvalidSelection, no round trip", func() {
			_, err := Voting(ctx, 12345, "despesas")
			So(apierror.Is(err, apierror.InvalidSelection), ShouldBeTrue)
		})

		Convey("every resource rejects a bogus series", func() {
			calls := []func(context.Context, int, string) ([]Record, error){
				Block, Deputy, Event, Front, Legislature, Body, Party,
				Proposition, Voting,
			}
			for _, call := range calls {
				_, err := call(ctx, 1, "bogus")
				So(apierror.Is(err, apierror.InvalidSelection), ShouldBeTrue)
			}
		})
	})
}
