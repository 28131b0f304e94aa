// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchrec loads btree benchmark result records.
//
// Each record is one line of newline-delimited JSON: a flat object
// mapping field names to scalars (or, for per-operation rate vectors,
// a short array of numbers). Every field name must be registered with
// a Kind; unknown fields abort the load rather than being skipped, so
// a schema drift between the benchmark binary and the analysis is
// caught immediately.
package benchrec

import "sort"

// Kind classifies a result-record field.
type Kind int

const (
	// KindBuild fields are fixed at compile time: a feature axis
	// or the build revision.
	KindBuild Kind = iota
	// KindRun fields are chosen at benchmark invocation time,
	// such as workload parameters.
	KindRun
	// KindValue fields are measured numeric outcomes.
	KindValue
	// KindAux fields are metadata that never participates in
	// grouping or aggregation.
	KindAux
)

var kindNames = [...]string{"build", "run", "value", "aux"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

// A Registry is an immutable mapping from every recognized result
// field name to its Kind. It is constructed once at startup and
// passed explicitly to the loader and the analyzer.
type Registry struct {
	kinds map[string]Kind
}

// NewRegistry constructs a Registry from kinds. The map is copied;
// later changes to it do not affect the Registry.
func NewRegistry(kinds map[string]Kind) Registry {
	m := make(map[string]Kind, len(kinds))
	for name, k := range kinds {
		m[name] = k
	}
	return Registry{m}
}

// Kind returns the kind of the named field and whether the field is
// registered.
func (r Registry) Kind(name string) (Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// Fields returns the registered field names of kind k, sorted.
func (r Registry) Fields(k Kind) []string {
	var out []string
	for name, fk := range r.kinds {
		if fk == k {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns the field contract of the btree benchmark
// binary.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]Kind{
		"basic-heads":             KindBuild,
		"basic-prefix":            KindBuild,
		"basic-use-hint":          KindBuild,
		"branch-cache":            KindBuild,
		"descend-adapt-inner":     KindBuild,
		"dynamic-prefix":          KindBuild,
		"hash":                    KindBuild,
		"hash-leaf-simd":          KindBuild,
		"head-early-abort-create": KindBuild,
		"inner":                   KindBuild,
		"leaf":                    KindBuild,
		"revision":                KindBuild,
		"strip-prefix":            KindBuild,

		"data":          KindRun,
		"host":          KindRun,
		"op":            KindRun,
		"op_rates":      KindRun,
		"range_len":     KindRun,
		"total_count":   KindRun,
		"value_len":     KindRun,
		"zipf_exponent": KindRun,

		"op_count":      KindValue,
		"time":          KindValue,
		"branch_misses": KindValue,
		"cycles":        KindValue,
		"instructions":  KindValue,
		"l1d_misses":    KindValue,
		"l1i_misses":    KindValue,
		"ll_misses":     KindValue,
		"task_clock":    KindValue,

		"run_start": KindAux,
	})
}
