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
	"testing"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestReferences(t *testing.T) {
	Convey("Ipeadata reference lists", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		ctx := fetch.UseClient(context.Background(), server.Client())
		URL = server.URL()

		Convey("Themes", func() {
			server.ResponseBody = []string{`{"value": [
			  {"TEMCODIGO": 28, "TEMNOME": "Agropecuária"},
			  {"TEMCODIGO": 54, "TEMCODIGO_PAI": 18, "TEMNOME": "Deputado Estadual"}
			]}`}
			themes, err := Themes(ctx)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/Temas")
			So(themes, ShouldResemble, []Theme{
				{Code: 28, Name: "Agropecuária"},
				{Code: 54, Parent: 18, Name: "Deputado Estadual"},
			})
		})

		Convey("Countries", func() {
			server.ResponseBody = []string{`{"value": [
			  {"PAICODIGO": "BRA", "PAINOME": "Brasil"},
			  {"PAICODIGO": "ZEURO", "PAINOME": "Zona do Euro"}
			]}`}
			countries, err := Countries(ctx)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/Paises")
			So(countries[1], ShouldResemble, Country{Code: "ZEURO", Name: "Zona do Euro"})
		})

		Convey("Territories", func() {
			body := `{"value": [
			  {"NIVNOME": "Municípios", "TERCODIGO": "1100205",
			   "TERNOME": "Porto Velho", "TERNOMEPADRAO": "PORTO VELHO",
			   "TERCAPITAL": true, "TERAREA": 34090.9, "NIVAMC": false}
			]}`

			Convey("lists all units", func() {
				server.ResponseBody = []string{body}
				territories, err := Territories(ctx, TerritoryFilter{})
				So(err, ShouldBeNil)
				So(server.RequestPath, ShouldEqual, "/Territorios")
				So(territories[0].Capital, ShouldBeTrue)
				So(territories[0].Area, ShouldEqual, 34090.9)
			})

			Convey("addresses one unit, unaccenting the municipality level", func() {
				server.ResponseBody = []string{body}
				_, err := Territories(ctx, TerritoryFilter{
					Code:  "1100205",
					Level: "Municípios",
				})
				So(err, ShouldBeNil)
				So(server.RequestPath, ShouldEqual,
					"/Territorios(TERCODIGO='1100205',NIVNOME='Municipios')")
			})
		})

		Convey("TerritorialLevels is the fixed level list", func() {
			levels := TerritorialLevels()
			So(levels[0], ShouldEqual, "Brasil")
			So(levels, ShouldContain, "Municípios")
			So(levels, ShouldContain, "AMC 70-00")
			So(levels, ShouldHaveLength, 16)
		})

		Convey("a theme without a code is MalformedResponse", func() {
			server.ResponseBody = []string{`{"value": [{"TEMNOME": "Câmbio"}]}`}
			_, err := Themes(ctx)
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
		})
	})
}
