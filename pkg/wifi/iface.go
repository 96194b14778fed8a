// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"fmt"

	nl80211 "github.com/mdlayher/wifi"
)

// Interfaces lists the names of nl80211 station interfaces.
func Interfaces() ([]string, error) {
	c, err := nl80211.New()
	if err != nil {
		return nil, fmt.Errorf("nl80211: %v", err)
	}
	defer c.Close()

	ifis, err := c.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("nl80211 interfaces: %v", err)
	}

	var names []string
	for _, ifi := range ifis {
		if ifi.Name == "" || ifi.Type != nl80211.InterfaceTypeStation {
			continue
		}
		names = append(names, ifi.Name)
	}
	return names, nil
}

// DefaultInterface returns the first wireless station interface.
func DefaultInterface() (string, error) {
	names, err := Interfaces()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no wireless interfaces found")
	}
	return names[0], nil
}

// IsWireless reports whether name is a wireless station interface.
func IsWireless(name string) bool {
	names, err := Interfaces()
	if err != nil {
		return false
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
