// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcfg declares the build-time feature space of the btree
// benchmark and enumerates configurations over it.
//
// A Space is a fixed, ordered collection of Axes. Each Axis names one
// feature dimension and lists its allowed option tokens; the first
// option is the axis default. A Config is one total assignment of an
// option to every axis. Configs are immutable snapshots: once handed
// out by a Space, a Combinations sequence, or a Generator, a Config
// never changes, so callers may retain Configs across builds.
package benchcfg

import (
	"fmt"
	"strings"
)

// An Axis is one feature dimension: a name and its ordered set of
// allowed option tokens. The first option is the axis default.
type Axis struct {
	Name    string
	Options []string
}

// A Space is an ordered collection of feature axes. It is immutable
// after construction and safe for concurrent use.
type Space struct {
	axes  []Axis
	index map[string]int // axis name -> position in axes
}

// NewSpace constructs a Space from axes, in the given declaration
// order. Axis names must be unique and non-empty, and every axis must
// declare at least one option, with no duplicate options.
func NewSpace(axes ...Axis) (*Space, error) {
	s := &Space{index: make(map[string]int)}
	for _, ax := range axes {
		if ax.Name == "" {
			return nil, fmt.Errorf("axis with empty name")
		}
		if _, ok := s.index[ax.Name]; ok {
			return nil, fmt.Errorf("duplicate axis %q", ax.Name)
		}
		if len(ax.Options) == 0 {
			return nil, fmt.Errorf("axis %q has no options", ax.Name)
		}
		seen := make(map[string]bool, len(ax.Options))
		for _, opt := range ax.Options {
			if seen[opt] {
				return nil, fmt.Errorf("axis %q has duplicate option %q", ax.Name, opt)
			}
			seen[opt] = true
		}
		// Copy the options so later changes to the caller's
		// slice cannot reach into the Space.
		ax.Options = append([]string(nil), ax.Options...)
		s.index[ax.Name] = len(s.axes)
		s.axes = append(s.axes, ax)
	}
	return s, nil
}

// MustSpace is like NewSpace but panics on error. It is intended for
// in-source feature tables.
func MustSpace(axes ...Axis) *Space {
	s, err := NewSpace(axes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Axes returns the axes in declaration order. The caller must not
// modify the returned slice.
func (s *Space) Axes() []Axis {
	return s.axes
}

// NumConfigs returns the size of the full cartesian product of s's
// axes, which is the number of Configs Combinations will produce.
func (s *Space) NumConfigs() int {
	n := 1
	for _, ax := range s.axes {
		n *= len(ax.Options)
	}
	return n
}

// DefaultConfig returns the Config that assigns every axis its first
// declared option.
func (s *Space) DefaultConfig() Config {
	vals := make([]string, len(s.axes))
	for i, ax := range s.axes {
		vals[i] = ax.Options[0]
	}
	return Config{s, vals}
}

// hasOption reports whether value is one of ax's declared options.
func (ax *Axis) hasOption(value string) bool {
	for _, opt := range ax.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// A Config is a total assignment of one option to every axis of a
// Space. The zero Config belongs to no Space and has no fields.
//
// A Config is an immutable value: the values backing it are never
// shared with a generator's working state, so mutating the source
// that produced a Config cannot alter it.
type Config struct {
	space *Space
	vals  []string // indexed by axis declaration order
}

// Space returns the Space c assigns over, or nil for a zero Config.
func (c Config) Space() *Space {
	return c.space
}

// Get returns the option c assigns to the named axis, or "" if the
// axis is not declared.
func (c Config) Get(axis string) string {
	if c.space == nil {
		return ""
	}
	i, ok := c.space.index[axis]
	if !ok {
		return ""
	}
	return c.vals[i]
}

// Map returns c as a fresh name-to-option map.
func (c Config) Map() map[string]string {
	m := make(map[string]string, len(c.vals))
	for i, v := range c.vals {
		m[c.space.axes[i].Name] = v
	}
	return m
}

// Equal reports whether c and o assign the same options over the same
// Space.
func (c Config) Equal(o Config) bool {
	if c.space != o.space || len(c.vals) != len(o.vals) {
		return false
	}
	for i, v := range c.vals {
		if o.vals[i] != v {
			return false
		}
	}
	return true
}

// String returns c as a space-separated sequence of axis:option pairs
// in axis declaration order.
func (c Config) String() string {
	buf := new(strings.Builder)
	for i, v := range c.vals {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(c.space.axes[i].Name)
		buf.WriteByte(':')
		buf.WriteString(v)
	}
	return buf.String()
}
