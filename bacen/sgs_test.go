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
	"bytes"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/dadosbrasil/dadosbrasil/apierror"
	"github.com/dadosbrasil/dadosbrasil/table"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSGS(t *testing.T) {
	Convey("Series", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		ctx := fetch.UseClient(context.Background(), server.Client())
		SGSURL = server.URL()

		Convey("fetches a date window, keeping values as strings", func() {
			server.ResponseBody = []string{`[
			  {"data": "01/01/2010", "valor": "8.75"},
			  {"data": "02/01/2010", "valor": "8.75"}
			]`}
			values, err := Series(ctx, 432, SeriesOptions{
				Start: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/dados/serie/bcdata.sgs.432/dados")
			So(server.RequestQuery, ShouldResemble, url.Values{
				"dataInicial": []string{"01/01/2010"},
				"dataFinal":   []string{"01/01/2021"},
			})
			So(values, ShouldResemble, []SeriesValue{
				{Date: "01/01/2010", Value: "8.75"},
				{Date: "02/01/2010", Value: "8.75"},
			})

			Convey("and exports them as a table", func() {
				var buf bytes.Buffer
				So(SeriesTable(values).WriteCSV(&buf, table.Params{}), ShouldBeNil)
				So(buf.String(), ShouldEqual,
					"date,value\n01/01/2010,8.75\n02/01/2010,8.75\n")
			})
		})

		Convey("Last selects the most recent observations", func() {
			server.ResponseBody = []string{`[
			  {"data": "01/01/2023", "valor": "3.25", "datafim": "31/12/2023"}
			]`}
			values, err := Series(ctx, 13521, SeriesOptions{Last: 5})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual,
				"/dados/serie/bcdata.sgs.13521/dados/ultimos/5")
			So(server.RequestQuery, ShouldHaveLength, 0)
			So(values[0].End, ShouldEqual, "31/12/2023")
		})

		Convey("a non-array body is MalformedResponse", func() {
			server.ResponseBody = []string{`{"erro": "série inexistente"}`}
			_, err := Series(ctx, 999999, SeriesOptions{})
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
		})

		Convey("an observation without a value is MalformedResponse", func() {
			server.ResponseBody = []string{`[{"data": "01/01/2010"}]`}
			_, err := Series(ctx, 432, SeriesOptions{})
			So(apierror.Is(err, apierror.MalformedResponse), ShouldBeTrue)
		})
	})
}
