// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchship stages built campaign artifacts and ships them to
// the benchmark host.
//
// A campaign directory holds one artifact per built configuration
// plus the run-trigger script. Shipping replaces the remote campaign
// directory wholesale: this is a one-host, one-campaign-at-a-time
// design, and the remote delete before upload is intentional.
// Starting the remote run is an explicit hand-off to the operator;
// this package only reports the command to run.
package benchship

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// NewCampaignDir creates a fresh campaign directory under parent,
// named with the creation time so that separate campaigns never
// collide, and returns its path.
func NewCampaignDir(parent string) (string, error) {
	dir := filepath.Join(parent, "build-"+time.Now().Format("2006-01-02-15-04-05"))
	if err := os.Mkdir(dir, 0777); err != nil {
		return "", err
	}
	return dir, nil
}

// A TransferError reports a non-zero exit from the remote transfer.
// The campaign aborts, but the local campaign directory and its
// artifacts are left in place.
type TransferError struct {
	Host string
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer to %s: %v", e.Host, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// An Uploader ships campaign directories to one statically configured
// benchmark host.
type Uploader struct {
	Host      string // ssh host name
	RemoteDir string // remote campaign directory, replaced on upload
	RunScript string // local run-trigger script, staged as run_all.sh
}

// Upload stages the run script into dir and replaces the remote
// campaign directory with dir's contents. Any prior remote campaign
// is deleted first.
func (u *Uploader) Upload(dir string) error {
	if u.RunScript != "" {
		if err := copyFile(filepath.Join(dir, "run_all.sh"), u.RunScript); err != nil {
			return err
		}
	}

	// The remote directory may not exist yet, so the delete's exit
	// status is ignored.
	rm := exec.Command("ssh", u.Host, "rm", "-r", u.RemoteDir)
	rm.Stdout = os.Stdout
	rm.Stderr = os.Stderr
	rm.Run()

	sync := exec.Command("rsync", "-r", "-E", "-e", "ssh", dir+"/", u.Host+":"+u.RemoteDir+"/")
	sync.Stdout = os.Stdout
	sync.Stderr = os.Stderr
	if err := sync.Run(); err != nil {
		return &TransferError{u.Host, err}
	}
	return nil
}

// RemoteRunCommand returns the command an operator runs to start the
// uploaded campaign on the benchmark host.
func (u *Uploader) RemoteRunCommand() string {
	return fmt.Sprintf("ssh -f %s 'nohup bash %s/run_all.sh'", u.Host, u.RemoteDir)
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
