// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) ([]*Record, error) {
	t.Helper()
	r := NewReader(strings.NewReader(input), "test", DefaultRegistry())
	var recs []*Record
	for r.Scan() {
		recs = append(recs, r.Record())
	}
	return recs, r.Err()
}

func TestReader(t *testing.T) {
	const input = `{"op": "get", "host": " h1 ", "op_rates": [1, 0.5, 2], "range_len": 100, "time": 1.5}

{"op": "put", "host": "h2", "time": 2.5, "op_count": 1000}
`
	recs, err := readAll(t, input)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	// Normalization: strings trimmed, rate vectors colon-joined in
	// order, numeric run parameters in canonical form.
	wantKeys := map[string]string{
		"op":        "get",
		"host":      "h1",
		"op_rates":  "1:0.5:2",
		"range_len": "100",
	}
	if !reflect.DeepEqual(wantKeys, recs[0].Keys) {
		t.Errorf("keys: want %v, got %v", wantKeys, recs[0].Keys)
	}
	wantValues := map[string]float64{"time": 1.5}
	if !reflect.DeepEqual(wantValues, recs[0].Values) {
		t.Errorf("values: want %v, got %v", wantValues, recs[0].Values)
	}

	if file, line := recs[1].Pos(); file != "test" || line != 3 {
		t.Errorf("Pos: want test:3, got %s:%d", file, line)
	}
	if got := recs[1].Values["op_count"]; got != 1000 {
		t.Errorf("op_count: want 1000, got %v", got)
	}
}

func TestReaderUnknownField(t *testing.T) {
	_, err := readAll(t, `{"op": "get", "unregistered_field": 1}`)
	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownFieldError", err)
	}
	if unknown.Field != "unregistered_field" {
		t.Errorf("field: want unregistered_field, got %q", unknown.Field)
	}
	if unknown.Line != 1 {
		t.Errorf("line: want 1, got %d", unknown.Line)
	}
}

func TestReaderSyntaxErrors(t *testing.T) {
	check := func(input string) {
		t.Helper()
		_, err := readAll(t, input)
		var syntax *SyntaxError
		if !errors.As(err, &syntax) {
			t.Errorf("readAll(%q): got %v, want SyntaxError", input, err)
		}
	}
	// Truncated JSON, a non-numeric value field, and a rate vector
	// holding a non-number.
	check(`{"op": `)
	check(`{"time": "fast"}`)
	check(`{"op_rates": [1, "x"]}`)
}

func TestReaderStopsAtError(t *testing.T) {
	const input = `{"op": "get", "time": 1}
{"bogus": 1}
{"op": "put", "time": 2}
`
	recs, err := readAll(t, input)
	if err == nil {
		t.Fatal("load succeeded, want error")
	}
	if len(recs) != 1 {
		t.Errorf("got %d records before the error, want 1", len(recs))
	}
}

func TestReadAllFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.out")
	if err := os.WriteFile(path, []byte(`{"op": "get", "time": 1}`+"\n"), 0666); err != nil {
		t.Fatal(err)
	}
	recs, err := ReadAll(path, DefaultRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	if _, err := ReadAll(filepath.Join(t.TempDir(), "missing"), DefaultRegistry()); err == nil {
		t.Error("ReadAll of missing file succeeded")
	}
}

func TestRegistry(t *testing.T) {
	reg := DefaultRegistry()
	if k, ok := reg.Kind("op_count"); !ok || k != KindValue {
		t.Errorf("op_count: got (%v, %v), want (value, true)", k, ok)
	}
	if _, ok := reg.Kind("bogus"); ok {
		t.Error("bogus field is registered")
	}
	want := []string{
		"branch_misses", "cycles", "instructions", "l1d_misses",
		"l1i_misses", "ll_misses", "op_count", "task_clock", "time",
	}
	if got := reg.Fields(KindValue); !reflect.DeepEqual(want, got) {
		t.Errorf("value fields: want %v, got %v", want, got)
	}
	if got := reg.Fields(KindAux); !reflect.DeepEqual([]string{"run_start"}, got) {
		t.Errorf("aux fields: got %v", got)
	}
}
