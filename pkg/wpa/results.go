// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wpa

import (
	"fmt"
	"strconv"
	"strings"
)

// BSS is one row of a SCAN_RESULTS reply.
type BSS struct {
	BSSID     string
	Frequency int
	Signal    int
	Flags     string
	SSID      string
}

// ParseScanResults parses the tab separated SCAN_RESULTS table:
//
//	bssid / frequency / signal level / flags / ssid
//	00:11:22:33:44:55	2412	-40	[WPA2-PSK-CCMP][ESS]	Cafe
//
// Rows that do not have enough columns are skipped.
func ParseScanResults(reply string) ([]BSS, error) {
	lines := strings.Split(strings.TrimRight(reply, "\n"), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "bssid") {
		return nil, fmt.Errorf("wpa: unexpected SCAN_RESULTS header %q", lines[0])
	}

	var res []BSS
	for _, l := range lines[1:] {
		f := strings.SplitN(l, "\t", 5)
		if len(f) < 4 {
			continue
		}
		freq, err := strconv.Atoi(f[1])
		if err != nil {
			continue
		}
		signal, err := strconv.Atoi(f[2])
		if err != nil {
			continue
		}
		b := BSS{BSSID: f[0], Frequency: freq, Signal: signal, Flags: f[3]}
		if len(f) == 5 {
			b.SSID = DecodeSSID(f[4])
		}
		res = append(res, b)
	}
	return res, nil
}

// DecodeSSID undoes wpa_supplicant's printf_encode escaping.
func DecodeSSID(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '\\', '"':
			b.WriteByte(s[i])
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'e':
			b.WriteByte(0x1b)
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			b.WriteString(`\x`)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
