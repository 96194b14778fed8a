// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wpa

import (
	"strconv"
	"strings"
)

// Event names wpa_supplicant emits that we care about.
const (
	EventScanResults  = "CTRL-EVENT-SCAN-RESULTS"
	EventScanFailed   = "CTRL-EVENT-SCAN-FAILED"
	EventScanStarted  = "CTRL-EVENT-SCAN-STARTED"
	EventConnected    = "CTRL-EVENT-CONNECTED"
	EventDisconnected = "CTRL-EVENT-DISCONNECTED"
)

// Event is one unsolicited message, e.g. "<3>CTRL-EVENT-SCAN-RESULTS ".
type Event struct {
	Level int
	Name  string
	Args  string
}

// ParseEvent splits a raw event message. ok is false for anything that
// does not carry a "<level>" prefix.
func ParseEvent(msg string) (Event, bool) {
	msg = strings.TrimRight(msg, "\n ")
	if !strings.HasPrefix(msg, "<") {
		return Event{}, false
	}
	end := strings.IndexByte(msg, '>')
	if end < 0 {
		return Event{}, false
	}
	level, err := strconv.Atoi(msg[1:end])
	if err != nil {
		return Event{}, false
	}
	body := msg[end+1:]
	name, args, _ := strings.Cut(body, " ")
	if name == "" {
		return Event{}, false
	}
	return Event{Level: level, Name: name, Args: args}, true
}
