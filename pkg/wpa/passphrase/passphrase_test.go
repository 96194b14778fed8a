// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passphrase

import "testing"

func TestPSK(t *testing.T) {
	for _, tt := range []struct {
		name string
		ssid string
		pass string
		want string
	}{
		{
			// IEEE 802.11i-2004 Annex H.4 test vector.
			name: "ieee_vector",
			ssid: "IEEE",
			pass: "password",
			want: "f42c6fc52df0ebef9ebb4b90b38a5f902e83fe1b135a70e23aed762e9710a12e",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := PSK(tt.ssid, tt.pass); got != tt.want {
				t.Errorf("PSK(%q, %q) = %v, want %v", tt.ssid, tt.pass, got, tt.want)
			}
		})
	}
}

func TestPSKShortPassphrase(t *testing.T) {
	// wpa_supplicant rejects quoted passphrases under 8 chars; the hex form has no such limit.
	if got := PSK("Home", "abc"); len(got) != 64 {
		t.Errorf("Incorrect key length. got: %v, want: 64", len(got))
	}
}
