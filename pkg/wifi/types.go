// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"fmt"
	"sync"
)

// ScanResult is one network seen by the last scan.
// SSID is not unique: several access points may share it.
type ScanResult struct {
	SSID      string
	Level     int // dBm
	BSSID     string
	Frequency int // MHz
	Flags     string
}

// String is the list label, e.g. "Cafe (-40 dBm)".
func (r ScanResult) String() string {
	return fmt.Sprintf("%s (%d dBm)", r.SSID, r.Level)
}

// ScanEvent is the one-shot notification that a scan finished.
type ScanEvent struct {
	Success bool
}

// Subscription delivers ScanEvents until Close is called.
type Subscription struct {
	C <-chan ScanEvent

	once   sync.Once
	cancel func()
}

func newSubscription(c <-chan ScanEvent, cancel func()) *Subscription {
	return &Subscription{C: c, cancel: cancel}
}

// Close releases the registration. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Manager is the host's network management service.
type Manager interface {
	// RadioEnabled reports whether the wireless radio is on.
	RadioEnabled() (bool, error)
	// SetRadioEnabled turns the radio on or off and returns once done.
	SetRadioEnabled(on bool) error
	// StartScan asks for a scan. A nil error means the request was accepted;
	// completion is reported through Subscribe.
	StartScan() error
	// ScanResults returns what the last completed scan saw.
	ScanResults() ([]ScanResult, error)
	// Subscribe registers for scan completion notifications.
	Subscribe() (*Subscription, error)
	// Disconnect drops the active network, if any.
	Disconnect() error
	// AddNetwork registers req and returns its network id.
	AddNetwork(req JoinRequest) (int, error)
	// EnableNetwork enables id and makes it the active network.
	EnableNetwork(id int) error
	Close() error
}

// fanout delivers events to a set of subscriber channels. Each channel holds
// at most one pending event; later events are dropped until it is drained.
type fanout struct {
	mu   sync.Mutex
	next int
	subs map[int]chan ScanEvent
}

func (f *fanout) add() *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs == nil {
		f.subs = make(map[int]chan ScanEvent)
	}
	id := f.next
	f.next++
	c := make(chan ScanEvent, 1)
	f.subs[id] = c
	return newSubscription(c, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	})
}

func (f *fanout) send(ev ScanEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.subs {
		select {
		case c <- ev:
		default:
		}
	}
}

func (f *fanout) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
