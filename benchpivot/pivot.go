// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchpivot aggregates loaded benchmark records into pivot
// tables.
//
// Records are grouped by their build- and run-kind fields and every
// value-kind field is averaged within each group. Two reductions
// shape the grouping key: fields the caller explicitly aggregates
// over are removed, and fields that take a single distinct value
// across the whole dataset are dropped unconditionally, since a
// dimension nothing varies on discriminates nothing.
package benchpivot

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/btreelab/btreebench/benchrec"
)

// An InvalidAggregateFieldError reports a request to aggregate over a
// field that is not of build or run kind.
type InvalidAggregateFieldError struct {
	Field string
	Kind  benchrec.Kind
}

func (e *InvalidAggregateFieldError) Error() string {
	return fmt.Sprintf("cannot aggregate over %s field %q", e.Kind, e.Field)
}

// A Table is the result of a pivot: one Row per distinct grouping-key
// tuple, with one mean per value field. GroupFields and ValueFields
// are sorted lexicographically; Rows are sorted by key tuple.
type Table struct {
	GroupFields []string
	ValueFields []string
	Rows        []Row
}

// A Row is one grouping-key tuple and its aggregates. Key is aligned
// with Table.GroupFields; Means and Counts are aligned with
// Table.ValueFields. Means[i] is NaN when no record in the group
// carried that field (Counts[i] == 0).
type Row struct {
	Key    []string
	Count  int // records in the group
	Means  []float64
	Counts []int
}

// Pivot groups records and computes per-group means of every value
// field present in the dataset.
//
// Every name in aggregateOver must be a registered build- or run-kind
// field; it is removed from the grouping key, collapsing its distinct
// values into one group. Every field of every record must be
// registered; this is checked here even for records that came from a
// validating loader, since analysis may run on externally assembled
// datasets.
func Pivot(records []*benchrec.Record, reg benchrec.Registry, aggregateOver []string) (*Table, error) {
	agg := make(map[string]bool)
	for _, name := range aggregateOver {
		k, ok := reg.Kind(name)
		if !ok {
			return nil, &benchrec.UnknownFieldError{Field: name}
		}
		if k != benchrec.KindBuild && k != benchrec.KindRun {
			return nil, &InvalidAggregateFieldError{name, k}
		}
		agg[name] = true
	}

	// One validation pass: collect the distinct values of every
	// build/run field and the set of value fields present.
	distinct := make(map[string]map[string]bool)
	valueSet := make(map[string]bool)
	for _, rec := range records {
		for name, v := range rec.Keys {
			k, ok := reg.Kind(name)
			if !ok {
				file, line := rec.Pos()
				return nil, &benchrec.UnknownFieldError{FileName: file, Line: line, Field: name}
			}
			if k != benchrec.KindBuild && k != benchrec.KindRun {
				continue // aux: read but never grouped or aggregated
			}
			vals := distinct[name]
			if vals == nil {
				vals = make(map[string]bool)
				distinct[name] = vals
			}
			vals[v] = true
		}
		for name := range rec.Values {
			if _, ok := reg.Kind(name); !ok {
				file, line := rec.Pos()
				return nil, &benchrec.UnknownFieldError{FileName: file, Line: line, Field: name}
			}
			valueSet[name] = true
		}
	}

	tab := &Table{}
	for name, vals := range distinct {
		// Degenerate dimensions are dropped unconditionally.
		if agg[name] || len(vals) == 1 {
			continue
		}
		tab.GroupFields = append(tab.GroupFields, name)
	}
	sort.Strings(tab.GroupFields)
	for name := range valueSet {
		tab.ValueFields = append(tab.ValueFields, name)
	}
	sort.Strings(tab.ValueFields)

	// Accumulate the observations of each group.
	type group struct {
		key  []string
		n    int
		vals [][]float64 // indexed like tab.ValueFields
	}
	groups := make(map[string]*group)
	for _, rec := range records {
		key := make([]string, len(tab.GroupFields))
		for i, name := range tab.GroupFields {
			key[i] = rec.Keys[name]
		}
		mapKey := strings.Join(key, "\x00")
		g := groups[mapKey]
		if g == nil {
			g = &group{key: key, vals: make([][]float64, len(tab.ValueFields))}
			groups[mapKey] = g
		}
		g.n++
		for i, name := range tab.ValueFields {
			if v, ok := rec.Values[name]; ok {
				g.vals[i] = append(g.vals[i], v)
			}
		}
	}

	for _, g := range groups {
		row := Row{
			Key:    g.key,
			Count:  g.n,
			Means:  make([]float64, len(tab.ValueFields)),
			Counts: make([]int, len(tab.ValueFields)),
		}
		for i, xs := range g.vals {
			row.Counts[i] = len(xs)
			if len(xs) == 0 {
				row.Means[i] = math.NaN()
				continue
			}
			row.Means[i] = stats.Sample{Xs: xs}.Mean()
		}
		tab.Rows = append(tab.Rows, row)
	}
	sort.Slice(tab.Rows, func(i, j int) bool {
		a, b := tab.Rows[i].Key, tab.Rows[j].Key
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return tab, nil
}
