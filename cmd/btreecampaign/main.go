// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Btreecampaign builds the btree benchmark under a hand-picked
// sequence of feature configurations and ships the binaries to the
// benchmark host.
//
// The campaign is defined in source, not by flags: the feature space
// lives in package benchcfg and the Set sequence below picks the
// configurations to build. Edit the sequence and rerun.
//
// Each build overwrites Cargo.toml and build-info.h in the working
// tree, so the tool shows `git status` and waits for Enter before the
// first build. Builds run strictly one at a time; the first failure
// of a build or of the upload aborts the whole campaign. Remote
// execution is not started automatically: the final line of output is
// the command to run it.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/btreelab/btreebench/benchbuild"
	"github.com/btreelab/btreebench/benchcfg"
	"github.com/btreelab/btreebench/benchship"
)

const (
	host      = "cascade-01"
	remoteDir = "cp-target"
	runScript = "run_all_cp_target.sh"
)

var target = benchbuild.TargetTPCC

// cases returns the configurations of this campaign.
func cases(space *benchcfg.Space) []benchcfg.Config {
	g := benchcfg.NewGenerator(space)

	// Baseline shared by every case.
	g.MustSet("basic-prefix", "true")
	g.MustSet("basic-heads", "true")
	g.MustSet("basic-use-hint", "true")
	g.MustSet("leaf", "hash")
	g.Clear()

	// Measured cases, each building on the last.
	g.MustSet("inner", "explicit_length")
	g.MustSet("leaf", "adapt")

	return g.Configs()
}

func main() {
	log.SetPrefix("")
	log.SetFlags(0)

	configs := cases(benchcfg.DefaultSpace())

	// The builds overwrite tracked files; show what is at stake and
	// let the operator abort.
	status := exec.Command("git", "status")
	status.Stdout = os.Stdout
	status.Stderr = os.Stderr
	status.Run()
	fmt.Printf("press Enter to build %d configurations: ", len(configs))
	if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
		log.Fatal(err)
	}

	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		log.Fatal("resolving revision: ", err)
	}
	revision := strings.TrimSpace(string(out))

	dir, err := benchship.NewCampaignDir(".")
	if err != nil {
		log.Fatal(err)
	}

	driver := &benchbuild.Driver{
		SourceDir:   ".",
		ArtifactDir: dir,
		Revision:    revision,
		Target:      target,
	}
	for i, cfg := range configs {
		log.Printf("building %d/%d: %v", i+1, len(configs), cfg)
		if _, err := driver.Build(cfg, i+1); err != nil {
			log.Fatal(err)
		}
	}

	uploader := &benchship.Uploader{Host: host, RemoteDir: remoteDir, RunScript: runScript}
	if err := uploader.Upload(dir); err != nil {
		log.Fatal(err)
	}
	fmt.Println(uploader.RemoteRunCommand())
}
