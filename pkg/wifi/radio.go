// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/vishvananda/netlink"
)

// Radio switches a wireless interface on and off.
type Radio interface {
	Enabled(iface string) (bool, error)
	SetEnabled(iface string, on bool) error
}

// LinkRadio treats the radio as on when the link is administratively up
// and its phy is not soft blocked by rfkill.
type LinkRadio struct {
	// SysRoot is "/sys" unless overridden in tests.
	SysRoot string
}

var _ = Radio(&LinkRadio{})

func (r *LinkRadio) sysRoot() string {
	if r.SysRoot == "" {
		return "/sys"
	}
	return r.SysRoot
}

// rfkillSoft lists the soft block switches for iface's phy.
func (r *LinkRadio) rfkillSoft(iface string) []string {
	m, _ := filepath.Glob(filepath.Join(r.sysRoot(), "class/net", iface, "phy80211/rfkill*/soft"))
	return m
}

func (r *LinkRadio) Enabled(iface string) (bool, error) {
	l, err := netlink.LinkByName(iface)
	if err != nil {
		return false, fmt.Errorf("%s: %v", iface, err)
	}
	if l.Attrs().Flags&net.FlagUp == 0 {
		return false, nil
	}
	for _, f := range r.rfkillSoft(iface) {
		b, err := os.ReadFile(f)
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(string(b)) == "1" {
			return false, nil
		}
	}
	return true, nil
}

func (r *LinkRadio) SetEnabled(iface string, on bool) error {
	l, err := netlink.LinkByName(iface)
	if err != nil {
		return fmt.Errorf("%s: %v", iface, err)
	}
	if !on {
		return netlink.LinkSetDown(l)
	}
	for _, f := range r.rfkillSoft(iface) {
		if err := os.WriteFile(f, []byte("0"), 0644); err != nil {
			return fmt.Errorf("unblock %s: %v", f, err)
		}
	}
	if err := netlink.LinkSetUp(l); err != nil {
		return fmt.Errorf("%s up: %v", iface, err)
	}
	return nil
}
