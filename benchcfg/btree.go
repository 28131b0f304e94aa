// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcfg

// DefaultSpace returns the feature space of the btree benchmark. The
// first option of each axis is the build default. Axis names match
// the build-kind fields of the result records the binary emits.
func DefaultSpace() *Space {
	return MustSpace(
		Axis{"head-early-abort-create", []string{"false"}},
		Axis{"inner", []string{"basic", "padded", "explicit_length", "ascii", "art"}},
		Axis{"leaf", []string{"basic", "hash", "adapt"}},
		Axis{"hash-leaf-simd", []string{"32"}},
		Axis{"strip-prefix", []string{"false", "true"}},
		Axis{"hash", []string{"crc32"}},
		Axis{"descend-adapt-inner", []string{"none", "1000", "100", "10"}},
		Axis{"branch-cache", []string{"false", "true"}},
		Axis{"dynamic-prefix", []string{"false", "true"}},
		Axis{"hash-variant", []string{"head", "alloc"}},
		Axis{"leave-adapt-range", []string{"3", "7", "15", "31"}},
		Axis{"basic-use-hint", []string{"false", "true", "naive"}},
		Axis{"basic-prefix", []string{"false", "true"}},
		Axis{"basic-heads", []string{"false", "true"}},
	)
}
