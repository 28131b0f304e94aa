// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchbuild renders btree benchmark configurations into the
// inputs consumed by the external build and drives one build per
// configuration.
//
// Rendering is pure: Flags and Metadata map a Config (plus an
// optional revision) to values without touching the filesystem. The
// Driver performs the single explicit write of the shared build
// description and the synchronous external build.
package benchbuild

import (
	"strings"

	"github.com/btreelab/btreebench/benchcfg"
)

// A Flag is one build-system feature flag synthesized from an
// (axis, option) pair. The build sees a flag for every option of
// every axis, so the full option universe is declared; Default marks
// exactly the options the configuration selects.
type Flag struct {
	Name    string // "{axis}_{option}"
	Default bool
}

// Flags synthesizes the flag universe for cfg's Space, in axis
// declaration order with each axis's options in declaration order.
func Flags(cfg benchcfg.Config) []Flag {
	var out []Flag
	for _, ax := range cfg.Space().Axes() {
		chosen := cfg.Get(ax.Name)
		for _, opt := range ax.Options {
			out = append(out, Flag{ax.Name + "_" + opt, opt == chosen})
		}
	}
	return out
}

// Metadata renders the header/values pair embedded into the built
// binary, which tags every result record the binary emits with its
// build-time configuration. Both strings are comma-joined lists of
// equal length, position-aligned: field i of header names the token
// at field i of values. The field order is the Config's own axis
// order; when revision is non-empty it is appended as a synthetic
// trailing field named "revision".
func Metadata(cfg benchcfg.Config, revision string) (header, values string) {
	var names, vals []string
	for _, ax := range cfg.Space().Axes() {
		names = append(names, ax.Name)
		vals = append(vals, cfg.Get(ax.Name))
	}
	if revision != "" {
		names = append(names, "revision")
		vals = append(vals, revision)
	}
	return strings.Join(names, ","), strings.Join(vals, ",")
}
