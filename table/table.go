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

// Package table is a minimal tabular container for list-shaped API results,
// exportable as CSV or aligned text for downstream analysis.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/stockparfait/errors"
)

// Row is a single table row; the slice must have one element per header
// column.
type Row interface {
	CSV() []string
}

// Table holds an optional header and the rows added so far.
//
// A typical use:
//
//	t := table.New("id", "name")
//	t.AddRow(myRow{42, "Censo"})
//	t.WriteText(os.Stdout, table.Params{})
type Table struct {
	Header []string
	Rows   []Row
}

// New creates a Table with optional column headers.
func New(header ...string) *Table {
	return &Table{Header: header}
}

// AddRow appends one or more rows.
func (t *Table) AddRow(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Params controls CSV and text export.
type Params struct {
	MaxRows  int  // write at most this many rows; 0 = all
	NoHeader bool // suppress the header line
}

// limit returns the number of rows to write under p.
func (t *Table) limit(p Params) int {
	n := len(t.Rows)
	if p.MaxRows > 0 && p.MaxRows < n {
		n = p.MaxRows
	}
	return n
}

// WriteCSV writes the table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	cw := csv.NewWriter(w)
	if !p.NoHeader && len(t.Header) > 0 {
		if err := cw.Write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for _, r := range t.Rows[:t.limit(p)] {
		if err := cw.Write(r.CSV()); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush rows")
	}
	return nil
}

// WriteText writes the table as left-aligned columns separated by two
// spaces. Truncated output ends with a "... (N more rows)" marker.
func (t *Table) WriteText(w io.Writer, p Params) error {
	n := t.limit(p)
	var lines [][]string
	if !p.NoHeader && len(t.Header) > 0 {
		lines = append(lines, t.Header)
	}
	for _, r := range t.Rows[:n] {
		lines = append(lines, r.CSV())
	}

	var widths []int
	for _, line := range lines {
		if len(widths) == 0 {
			widths = make([]int, len(line))
		}
		if len(line) != len(widths) {
			return errors.Reason("row has %d columns, expected %d",
				len(line), len(widths))
		}
		for i, cell := range line {
			if len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	for _, line := range lines {
		padded := make([]string, len(line))
		for i, cell := range line {
			padded[i] = cell + strings.Repeat(" ", widths[i]-len([]rune(cell)))
		}
		row := strings.TrimRight(strings.Join(padded, "  "), " ")
		if _, err := fmt.Fprintln(w, row); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	if n < len(t.Rows) {
		if _, err := fmt.Fprintf(w, "... (%d more rows)\n", len(t.Rows)-n); err != nil {
			return errors.Annotate(err, "failed to write truncation marker")
		}
	}
	return nil
}
