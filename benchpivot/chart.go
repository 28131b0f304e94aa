// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchpivot

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart writes a bar chart of one value field to path, with one bar
// per table row labeled by the row's grouping-key values. The image
// format follows path's extension (.png, .svg, .pdf).
func (t *Table) Chart(path, valueField string) error {
	col := -1
	for i, name := range t.ValueFields {
		if name == valueField {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("no value field %q in table", valueField)
	}

	var vals plotter.Values
	var labels []string
	for _, row := range t.Rows {
		m := row.Means[col]
		if math.IsNaN(m) {
			m = 0
		}
		vals = append(vals, m)
		labels = append(labels, strings.Join(row.Key, " "))
	}

	p := plot.New()
	p.Title.Text = valueField
	p.Y.Label.Text = "mean " + valueField
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = -1
	p.X.Tick.Label.YAlign = -0.5

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(labels...)

	width := vg.Length(len(labels)+2) * vg.Centimeter
	if min := 12 * vg.Centimeter; width < min {
		width = min
	}
	return p.Save(width, 10*vg.Centimeter, path)
}
