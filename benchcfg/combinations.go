// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcfg

// Combinations enumerates the full cartesian product of a Space's
// axes. Its API is modeled on bufio.Scanner: Scan advances to the
// next Config and Config returns an independent snapshot of it.
//
// The order is fixed: the first declared axis varies slowest and the
// last declared axis varies fastest, with each axis's options taken
// in declaration order. Campaign artifact numbering depends on this
// order, so it must not change.
//
// A Combinations is not restartable; obtain a fresh one from
// Space.Combinations to enumerate again.
type Combinations struct {
	space   *Space
	idx     []int // current option index per axis
	started bool
	done    bool
}

// Combinations returns an enumerator over the cartesian product of
// s's axes. It produces exactly s.NumConfigs() distinct Configs.
func (s *Space) Combinations() *Combinations {
	return &Combinations{space: s, idx: make([]int, len(s.axes))}
}

// Scan advances to the next Config in the enumeration. It returns
// false when the product is exhausted.
func (c *Combinations) Scan() bool {
	if c.done {
		return false
	}
	if !c.started {
		c.started = true
		return true
	}
	// Odometer increment with the last axis fastest.
	for i := len(c.idx) - 1; i >= 0; i-- {
		c.idx[i]++
		if c.idx[i] < len(c.space.axes[i].Options) {
			return true
		}
		c.idx[i] = 0
	}
	c.done = true
	return false
}

// Config returns the current Config. The returned value is an
// independent snapshot; advancing the enumeration does not change it.
func (c *Combinations) Config() Config {
	vals := make([]string, len(c.idx))
	for i, j := range c.idx {
		vals[i] = c.space.axes[i].Options[j]
	}
	return Config{c.space, vals}
}

// All collects the remaining Configs of the enumeration into a slice.
func (c *Combinations) All() []Config {
	var out []Config
	for c.Scan() {
		out = append(out, c.Config())
	}
	return out
}
