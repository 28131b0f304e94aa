// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchpivot

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
)

// WriteText writes the table as an aligned text grid: one header line
// naming the grouping-key fields followed by the value columns, then
// one line per row.
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cells := range t.grid() {
		for i, c := range cells {
			if i > 0 {
				io.WriteString(tw, "\t")
			}
			io.WriteString(tw, c)
		}
		io.WriteString(tw, "\n")
	}
	return tw.Flush()
}

// WriteCSV writes the table in CSV form: a header row, then one row
// per group.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	for _, cells := range t.grid() {
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// grid renders the table to cells, shared by the text and CSV
// emitters.
func (t *Table) grid() [][]string {
	header := append(append([]string{}, t.GroupFields...), t.ValueFields...)
	out := [][]string{header}
	for _, row := range t.Rows {
		cells := append([]string{}, row.Key...)
		for i, m := range row.Means {
			cells = append(cells, formatMean(m, row.Counts[i]))
		}
		out = append(out, cells)
	}
	return out
}

func formatMean(m float64, count int) string {
	if count == 0 || math.IsNaN(m) {
		return ""
	}
	return strconv.FormatFloat(m, 'g', -1, 64)
}
