// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchpivot

import (
	"strings"
	"testing"

	"github.com/btreelab/btreebench/benchrec"
	"github.com/btreelab/btreebench/internal/diff"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	const input = `{"leaf": "hash", "op": "get", "time": 1.5, "cycles": 10}
{"leaf": "hash", "op": "put", "time": 2.5, "cycles": 20}
{"leaf": "adapt", "op": "get", "time": 3.5, "cycles": 30}
`
	tab, err := Pivot(load(t, input), benchrec.DefaultRegistry(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func TestWriteText(t *testing.T) {
	want := `leaf   op   cycles  time
adapt  get  30      3.5
hash   get  10      1.5
hash   put  20      2.5
`
	out := new(strings.Builder)
	if err := testTable(t).WriteText(out); err != nil {
		t.Fatal(err)
	}
	if d := diff.Diff(want, out.String()); d != "" {
		t.Errorf("output differs (-want +got):\n%s", d)
	}
}

func TestWriteCSV(t *testing.T) {
	want := `leaf,op,cycles,time
adapt,get,30,3.5
hash,get,10,1.5
hash,put,20,2.5
`
	out := new(strings.Builder)
	if err := testTable(t).WriteCSV(out); err != nil {
		t.Fatal(err)
	}
	if d := diff.Diff(want, out.String()); d != "" {
		t.Errorf("output differs (-want +got):\n%s", d)
	}
}

func TestWriteHTML(t *testing.T) {
	out := new(strings.Builder)
	if err := testTable(t).WriteHTML(out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"<table class='pivot'>",
		"<th>leaf<th>op<th>cycles<th>time",
		"<td>adapt<td>get<td>30<td>3.5",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
