// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"reflect"
	"testing"

	"github.com/u-root/wifiscan/pkg/wpa/passphrase"
)

func TestNewWPA2PSK(t *testing.T) {
	// the security set never depends on the network
	for _, ssid := range []string{"Home", `"Home"`, "Open Cafe", ""} {
		r := NewWPA2PSK(ssid, "hunter2")
		want := []Setting{
			{"ssid", `"` + ssid + `"`},
			{"psk", passphrase.PSK(ssid, "hunter2")},
			{"proto", "RSN"},
			{"key_mgmt", "WPA-PSK"},
			{"pairwise", "CCMP TKIP"},
			{"group", "CCMP TKIP"},
		}
		if got := r.Settings(); !reflect.DeepEqual(got, want) {
			t.Errorf("Incorrect settings for %q. got: %+v, want: %+v", ssid, got, want)
		}
	}
}

func TestQuote(t *testing.T) {
	for _, tt := range []struct {
		in, quoted string
	}{
		{in: "Home", quoted: `"Home"`},
		{in: `"Guest"`, quoted: `""Guest""`},
		{in: `"`, quoted: `"""`},
		{in: "", quoted: `""`},
	} {
		if got := Quote(tt.in); got != tt.quoted {
			t.Errorf("Quote(%q) = %q, want %q", tt.in, got, tt.quoted)
		}
	}
}

func TestScanResultString(t *testing.T) {
	r := ScanResult{SSID: "Cafe", Level: -40}
	if got, want := r.String(), "Cafe (-40 dBm)"; got != want {
		t.Errorf("Incorrect label. got: %v, want: %v", got, want)
	}
}
