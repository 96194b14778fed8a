// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package passphrase derives WPA pre-shared keys the way wpa_passphrase does.
package passphrase

import (
	"crypto/sha1"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 4096
	keyLen     = 32
)

// PSK returns the 256-bit key for ssid and pass, hex encoded.
// No length or charset checks are made on pass.
func PSK(ssid, pass string) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(pass), []byte(ssid), iterations, keyLen, sha1.New))
}
