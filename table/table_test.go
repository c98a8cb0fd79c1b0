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

package table

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type pair struct {
	ID   string
	Name string
}

var _ Row = pair{}

func (p pair) CSV() []string { return []string{p.ID, p.Name} }

func TestTable(t *testing.T) {
	t.Parallel()

	Convey("Table writers", t, func() {
		tbl := New("id", "name")
		tbl.AddRow(pair{"CD", "Censo Demográfico"}, pair{"PA", "Produção Agrícola"})

		Convey("WriteCSV", func() {
			var buf bytes.Buffer
			So(tbl.WriteCSV(&buf, Params{}), ShouldBeNil)
			So(buf.String(), ShouldEqual,
				"id,name\nCD,Censo Demográfico\nPA,Produção Agrícola\n")
		})

		Convey("WriteCSV without header", func() {
			var buf bytes.Buffer
			So(tbl.WriteCSV(&buf, Params{NoHeader: true}), ShouldBeNil)
			So(buf.String(), ShouldEqual,
				"CD,Censo Demográfico\nPA,Produção Agrícola\n")
		})

		Convey("WriteText aligns columns", func() {
			var buf bytes.Buffer
			So(tbl.WriteText(&buf, Params{}), ShouldBeNil)
			So(buf.String(), ShouldEqual,
				"id  name\n"+
					"CD  Censo Demográfico\n"+
					"PA  Produção Agrícola\n")
		})

		Convey("MaxRows truncates with a marker", func() {
			var buf bytes.Buffer
			So(tbl.WriteText(&buf, Params{MaxRows: 1}), ShouldBeNil)
			So(buf.String(), ShouldEqual,
				"id  name\n"+
					"CD  Censo Demográfico\n"+
					"... (1 more rows)\n")
		})

		Convey("mismatched row size is an error", func() {
			tbl.Header = []string{"only"}
			var buf bytes.Buffer
			So(tbl.WriteText(&buf, Params{}), ShouldNotBeNil)
		})
	})
}
