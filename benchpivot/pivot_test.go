// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchpivot

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/btreelab/btreebench/benchrec"
)

func load(t *testing.T, input string) []*benchrec.Record {
	t.Helper()
	r := benchrec.NewReader(strings.NewReader(input), "test", benchrec.DefaultRegistry())
	var recs []*benchrec.Record
	for r.Scan() {
		recs = append(recs, r.Record())
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	return recs
}

func TestPivotAggregateOver(t *testing.T) {
	// Four records vary op with host constant. Aggregating over op
	// drops op explicitly and host as a degenerate dimension,
	// leaving a single row whose values are the mean of all four.
	const input = `{"op": "get", "host": "h1", "time": 1, "cycles": 10}
{"op": "get", "host": "h1", "time": 2, "cycles": 20}
{"op": "put", "host": "h1", "time": 3, "cycles": 30}
{"op": "put", "host": "h1", "time": 4, "cycles": 40}
`
	tab, err := Pivot(load(t, input), benchrec.DefaultRegistry(), []string{"op"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.GroupFields) != 0 {
		t.Errorf("group fields: got %v, want none", tab.GroupFields)
	}
	if want := []string{"cycles", "time"}; !reflect.DeepEqual(want, tab.ValueFields) {
		t.Errorf("value fields: want %v, got %v", want, tab.ValueFields)
	}
	if len(tab.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(tab.Rows))
	}
	row := tab.Rows[0]
	if row.Count != 4 {
		t.Errorf("row count: want 4, got %d", row.Count)
	}
	if want := []float64{25, 2.5}; !reflect.DeepEqual(want, row.Means) {
		t.Errorf("means: want %v, got %v", want, row.Means)
	}
}

func TestPivotGrouping(t *testing.T) {
	const input = `{"leaf": "hash", "op": "get", "host": "h1", "time": 1}
{"leaf": "hash", "op": "put", "host": "h1", "time": 3}
{"leaf": "adapt", "op": "get", "host": "h1", "time": 5}
{"leaf": "adapt", "op": "put", "host": "h1", "time": 7}
`
	tab, err := Pivot(load(t, input), benchrec.DefaultRegistry(), nil)
	if err != nil {
		t.Fatal(err)
	}
	// host is degenerate and dropped; leaf and op discriminate.
	if want := []string{"leaf", "op"}; !reflect.DeepEqual(want, tab.GroupFields) {
		t.Errorf("group fields: want %v, got %v", want, tab.GroupFields)
	}
	// Compare as a set of key/mean pairs; row order is not part
	// of the contract.
	got := make(map[string]float64)
	for _, row := range tab.Rows {
		got[strings.Join(row.Key, "/")] = row.Means[0]
	}
	want := map[string]float64{
		"hash/get":  1,
		"hash/put":  3,
		"adapt/get": 5,
		"adapt/put": 7,
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestPivotDegenerateNeverGrouped(t *testing.T) {
	const input = `{"leaf": "hash", "op": "get", "time": 1}
{"leaf": "hash", "op": "put", "time": 2}
`
	tab, err := Pivot(load(t, input), benchrec.DefaultRegistry(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range tab.GroupFields {
		if f == "leaf" {
			t.Error("single-valued field leaf appears in grouping key")
		}
	}
}

func TestPivotInvalidAggregateField(t *testing.T) {
	recs := load(t, `{"op": "get", "time": 1}`)
	reg := benchrec.DefaultRegistry()

	var invalid *InvalidAggregateFieldError
	if _, err := Pivot(recs, reg, []string{"time"}); !errors.As(err, &invalid) {
		t.Errorf("aggregate over value field: got %v, want InvalidAggregateFieldError", err)
	}
	if _, err := Pivot(recs, reg, []string{"run_start"}); !errors.As(err, &invalid) {
		t.Errorf("aggregate over aux field: got %v, want InvalidAggregateFieldError", err)
	}
	var unknown *benchrec.UnknownFieldError
	if _, err := Pivot(recs, reg, []string{"bogus"}); !errors.As(err, &unknown) {
		t.Errorf("aggregate over unknown field: got %v, want UnknownFieldError", err)
	}
}

func TestPivotUnknownField(t *testing.T) {
	// Analysis re-validates fields even for hand-assembled records.
	recs := []*benchrec.Record{{
		Keys:   map[string]string{"op": "get", "mystery": "1"},
		Values: map[string]float64{"time": 1},
	}}
	var unknown *benchrec.UnknownFieldError
	if _, err := Pivot(recs, benchrec.DefaultRegistry(), nil); !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownFieldError", err)
	}
	if unknown.Field != "mystery" {
		t.Errorf("field: want mystery, got %q", unknown.Field)
	}
}

func TestPivotMissingValueField(t *testing.T) {
	// A value field absent from a group yields an empty cell, not a
	// zero that would skew means.
	const input = `{"op": "get", "time": 1, "cycles": 10}
{"op": "put", "time": 2}
`
	tab, err := Pivot(load(t, input), benchrec.DefaultRegistry(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range tab.Rows {
		if row.Key[0] != "put" {
			continue
		}
		if row.Counts[0] != 0 {
			t.Errorf("cycles count for put: want 0, got %d", row.Counts[0])
		}
		if got := formatMean(row.Means[0], row.Counts[0]); got != "" {
			t.Errorf("cycles cell for put: want empty, got %q", got)
		}
	}
}
