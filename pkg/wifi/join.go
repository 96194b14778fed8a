// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"strings"

	"github.com/u-root/wifiscan/pkg/wpa/passphrase"
)

// JoinRequest is what gets handed to the supplicant to join a network.
type JoinRequest struct {
	// SSID is the network name as scanned, without added quotes.
	SSID       string
	Passphrase string
	Protocols  []string
	KeyMgmt    []string
	Pairwise   []string
	Group      []string
}

// NewWPA2PSK builds a WPA2-Personal request. The security parameters are
// always RSN, WPA-PSK, CCMP+TKIP: they are not derived from what the network
// advertises, so open, WEP and enterprise networks will not join.
func NewWPA2PSK(ssid, pass string) JoinRequest {
	return JoinRequest{
		SSID:       ssid,
		Passphrase: pass,
		Protocols:  []string{"RSN"},
		KeyMgmt:    []string{"WPA-PSK"},
		Pairwise:   []string{"CCMP", "TKIP"},
		Group:      []string{"CCMP", "TKIP"},
	}
}

// Setting is one SET_NETWORK variable.
type Setting struct {
	Name  string
	Value string
}

// Settings returns the network variables for r in the order they are set.
// The passphrase is sent as a derived hex key.
func (r JoinRequest) Settings() []Setting {
	return []Setting{
		{"ssid", Quote(r.SSID)},
		{"psk", passphrase.PSK(r.SSID, r.Passphrase)},
		{"proto", strings.Join(r.Protocols, " ")},
		{"key_mgmt", strings.Join(r.KeyMgmt, " ")},
		{"pairwise", strings.Join(r.Pairwise, " ")},
		{"group", strings.Join(r.Group, " ")},
	}
}

// Quote wraps name in double quotes. Quotes already in name are part of
// the network name and are kept.
func Quote(name string) string {
	return `"` + name + `"`
}
