// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package permission decides whether the process may read scan results.
package permission

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Checker is the runtime permission gate in front of scanning.
type Checker interface {
	// Granted reports whether scan results can be read.
	Granted() bool
	// Request asks the user for the permission and returns the prompt shown.
	// It does not wait for an answer.
	Request() string
}

// Socket grants access when the supplicant control socket is readable and
// writable by this process.
type Socket struct {
	Dir   string
	Iface string
}

var _ = Checker(&Socket{})

func (s *Socket) path() string {
	return filepath.Join(s.Dir, s.Iface)
}

func (s *Socket) Granted() bool {
	if err := unix.Access(s.path(), unix.R_OK|unix.W_OK); err != nil {
		log.Debugf("no access to %s (euid %d): %v", s.path(), unix.Geteuid(), err)
		return false
	}
	return true
}

func (s *Socket) Request() string {
	msg := fmt.Sprintf("Permission needed: allow access to %s (run as root or join its group), then scan again", s.path())
	log.Infof("requested permission for %s", s.path())
	return msg
}

// Always is granted unconditionally.
type Always struct{}

func (Always) Granted() bool { return true }

func (Always) Request() string { return "" }
