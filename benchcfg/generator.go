// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcfg

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAxis reports a Set call naming an axis the Space
	// does not declare.
	ErrUnknownAxis = errors.New("unknown axis")
	// ErrInvalidValue reports a Set call with a value outside the
	// named axis's declared options.
	ErrInvalidValue = errors.New("invalid value")
)

// A Generator builds a hand-picked sequence of Configs by mutating
// one axis at a time, starting from the Space defaults.
//
// Each successful Set appends an independent snapshot of the working
// configuration to the emitted sequence, so every emitted Config
// builds on the previous one, and no later Set can alter a snapshot
// already emitted. Only Set calls emit snapshots; there is no
// implicit commit step.
type Generator struct {
	space *Space
	work  []string // working assignment, indexed like Config.vals
	out   []Config
}

// NewGenerator returns a Generator whose working configuration is
// space's default assignment. The defaults themselves are not
// emitted; the first Set produces the first snapshot.
func NewGenerator(space *Space) *Generator {
	return &Generator{
		space: space,
		work:  append([]string(nil), space.DefaultConfig().vals...),
	}
}

// Set assigns value to the named axis in the working configuration
// and emits a snapshot of the result. If the axis is not declared or
// the value is not one of its options, Set returns an error wrapping
// ErrUnknownAxis or ErrInvalidValue and leaves the working
// configuration and the emitted sequence unchanged.
func (g *Generator) Set(axis, value string) error {
	i, ok := g.space.index[axis]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownAxis, axis)
	}
	if !g.space.axes[i].hasOption(value) {
		return fmt.Errorf("%w %q for axis %q", ErrInvalidValue, value, axis)
	}
	g.work[i] = value
	g.out = append(g.out, Config{g.space, append([]string(nil), g.work...)})
	return nil
}

// MustSet is like Set but panics on error. It is intended for
// in-source campaign definitions, where a bad axis or value is a
// programming mistake caught on the first run.
func (g *Generator) MustSet(axis, value string) {
	if err := g.Set(axis, value); err != nil {
		panic(err)
	}
}

// Current returns an independent snapshot of the working
// configuration without emitting it.
func (g *Generator) Current() Config {
	return Config{g.space, append([]string(nil), g.work...)}
}

// Configs returns the snapshots emitted so far, in emission order.
// The caller must not modify the returned slice.
func (g *Generator) Configs() []Config {
	return g.out
}

// Clear drops all emitted snapshots but keeps the working
// configuration, so a campaign can adjust several axes to a common
// baseline before recording the cases it will actually build.
func (g *Generator) Clear() {
	g.out = nil
}
