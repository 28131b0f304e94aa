// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchbuild

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/btreelab/btreebench/benchcfg"
)

// Target selects which external build produces the benchmark binary.
type Target int

const (
	// TargetCargo builds the standalone btree binary as a cargo
	// release build tuned for the benchmark host CPU.
	TargetCargo Target = iota
	// TargetTPCC builds the TPC-C harness with make.
	TargetTPCC
)

// A BuildError reports a non-zero exit from the external build step.
// It aborts the whole campaign: the shared build description has
// already been overwritten, so continuing would build later
// configurations against untrusted state.
type BuildError struct {
	Config benchcfg.Config
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building %v: %v", e.Config, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// A Driver builds one configuration at a time.
//
// The build description (the cargo feature table and the build-info
// header) is a single shared file pair in SourceDir, consumed by the
// synchronous external build. Build must therefore never be called
// concurrently: a campaign renders, builds, and collects strictly one
// configuration before starting the next.
type Driver struct {
	SourceDir   string // checkout containing Cargo.toml and build-info.h
	ArtifactDir string // campaign directory receiving built binaries
	Revision    string // version-control revision baked into each binary
	Target      Target
}

// Build renders cfg into the shared build description, runs the
// external build, and on success copies the binary into ArtifactDir
// as "btree-{revision}-{n}", returning the artifact path. n is the
// 1-based build order within the campaign; artifact numbering follows
// the order configurations are built.
func (d *Driver) Build(cfg benchcfg.Config, n int) (string, error) {
	if err := d.Configure(cfg); err != nil {
		return "", err
	}

	var cmd *exec.Cmd
	var built string
	switch d.Target {
	case TargetTPCC:
		cmd = exec.Command("make")
		cmd.Dir = filepath.Join(d.SourceDir, "tpcc")
		built = filepath.Join(d.SourceDir, "tpcc", "tpcc.elf")
	default:
		cmd = exec.Command("cargo", "rustc", "--bin", "btree", "--release", "--", "-C", "target-cpu=cascadelake")
		cmd.Dir = d.SourceDir
		built = filepath.Join(d.SourceDir, "target", "release", "btree")
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", &BuildError{cfg, err}
	}

	artifact := filepath.Join(d.ArtifactDir, fmt.Sprintf("btree-%s-%d", d.Revision, n))
	if err := copyFile(artifact, built); err != nil {
		return "", fmt.Errorf("collecting artifact: %v", err)
	}
	return artifact, nil
}

// Configure overwrites the shared build description in SourceDir with
// cfg: the [features] section of Cargo.toml (the previous file is
// kept as Cargo.toml.old) and the build-info.h metadata header.
func (d *Driver) Configure(cfg benchcfg.Config) error {
	if err := d.writeFeatures(cfg); err != nil {
		return err
	}
	return d.writeBuildInfo(cfg)
}

// writeFeatures rewrites Cargo.toml, keeping everything up to and
// including the [features] line and replacing the rest with the
// default set for cfg plus a declaration for every flag in the
// option universe.
func (d *Driver) writeFeatures(cfg benchcfg.Config) error {
	path := filepath.Join(d.SourceDir, "Cargo.toml")
	old, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path+".old", old, 0666); err != nil {
		return err
	}

	buf := new(strings.Builder)
	sc := bufio.NewScanner(strings.NewReader(string(old)))
	for sc.Scan() {
		buf.WriteString(sc.Text())
		buf.WriteByte('\n')
		if strings.Contains(sc.Text(), "[features]") {
			break
		}
	}
	flags := Flags(cfg)
	var defaults []string
	for _, f := range flags {
		if f.Default {
			defaults = append(defaults, fmt.Sprintf("%q", f.Name))
		}
	}
	fmt.Fprintf(buf, "default = [%s]\n", strings.Join(defaults, ","))
	for _, f := range flags {
		fmt.Fprintf(buf, "%s = []\n", f.Name)
	}
	return os.WriteFile(path, []byte(buf.String()), 0666)
}

// writeBuildInfo writes the metadata header the binary compiles in.
// The leading comma on both strings is deliberate: the binary emits
// them directly after its run-time CSV columns.
func (d *Driver) writeBuildInfo(cfg benchcfg.Config) error {
	header, values := Metadata(cfg, d.Revision)
	buf := new(strings.Builder)
	fmt.Fprintf(buf, "auto BUILD_CSV_HEADER = \",%s\";\n", header)
	fmt.Fprintf(buf, "auto BUILD_CSV_VALUES = \",%s\";\n", values)
	return os.WriteFile(filepath.Join(d.SourceDir, "build-info.h"), []byte(buf.String()), 0666)
}

func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0777)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
