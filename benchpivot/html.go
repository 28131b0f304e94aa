// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchpivot

import (
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("pivot").ParseFromTrustedTemplate(template.MakeTrustedTemplate(`
<table class='pivot'>
<tr>{{range .GroupFields}}<th>{{.}}{{end}}{{range .ValueFields}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr>{{range .Key}}<td>{{.}}{{end}}{{range .Cells}}<td>{{.}}{{end}}
{{end -}}
</table>
`)))

// htmlRow adapts a Row for the template, pre-formatting the mean
// cells.
type htmlRow struct {
	Key   []string
	Cells []string
}

// WriteHTML writes the table as an HTML fragment.
func (t *Table) WriteHTML(w io.Writer) error {
	type data struct {
		GroupFields []string
		ValueFields []string
		Rows        []htmlRow
	}
	d := data{GroupFields: t.GroupFields, ValueFields: t.ValueFields}
	for _, row := range t.Rows {
		cells := make([]string, len(row.Means))
		for i, m := range row.Means {
			cells[i] = formatMean(m, row.Counts[i])
		}
		d.Rows = append(d.Rows, htmlRow{row.Key, cells})
	}
	return htmlTemplate.Execute(w, d)
}
