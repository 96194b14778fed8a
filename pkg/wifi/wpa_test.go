// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/u-root/wifiscan/pkg/wpa/wpatest"
)

type fakeRadio struct {
	on    bool
	calls int
}

func (r *fakeRadio) Enabled(string) (bool, error) { return r.on, nil }

func (r *fakeRadio) SetEnabled(_ string, on bool) error {
	r.calls++
	r.on = on
	return nil
}

const scanTable = "bssid / frequency / signal level / flags / ssid\n" +
	"00:11:22:33:44:55\t2412\t-40\t[WPA2-PSK-CCMP][ESS]\tCafe\n" +
	"66:77:88:99:aa:bb\t5180\t-70\t[WPA2-PSK-CCMP][ESS]\tHome\n"

func newWorker(t *testing.T, h wpatest.HandlerFunc) (*WPAWorker, *wpatest.Server) {
	t.Helper()
	s, err := wpatest.NewServer(t.TempDir(), "wlan0", h)
	if err != nil {
		t.Fatalf("Fail to start fake supplicant: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	w, err := NewWPAWorker(s.Dir, s.Iface, &fakeRadio{})
	if err != nil {
		t.Fatalf("NewWPAWorker failed: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, s
}

func TestWPAWorkerScan(t *testing.T) {
	w, s := newWorker(t, func(cmd string) string {
		switch cmd {
		case "SCAN_RESULTS":
			return scanTable
		}
		return ""
	})

	sub, err := w.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	if err := w.StartScan(); err != nil {
		t.Fatalf("StartScan failed: %v", err)
	}
	s.Send("<3>CTRL-EVENT-SCAN-RESULTS ")

	select {
	case ev := <-sub.C:
		if !ev.Success {
			t.Errorf("Scan event should be successful")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("No scan event delivered")
	}

	res, err := w.ScanResults()
	if err != nil {
		t.Fatalf("ScanResults failed: %v", err)
	}
	if len(res) != 2 || res[0].String() != "Cafe (-40 dBm)" || res[1].String() != "Home (-70 dBm)" {
		t.Errorf("Incorrect results: %+v", res)
	}

	s.Send("<3>CTRL-EVENT-SCAN-FAILED ret=-16")
	select {
	case ev := <-sub.C:
		if ev.Success {
			t.Errorf("Scan event should be a failure")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("No scan event delivered")
	}
}

func TestWPAWorkerSubscribeOnce(t *testing.T) {
	w, s := newWorker(t, nil)

	a, err := w.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	b, err := w.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer a.Close()
	defer b.Close()

	if n := s.Monitors(); n != 1 {
		t.Errorf("Subscribers should share one monitor, got %v", n)
	}
}

func TestWPAWorkerScanRejected(t *testing.T) {
	w, _ := newWorker(t, func(cmd string) string {
		if cmd == "SCAN" {
			return "FAIL-BUSY\n"
		}
		return ""
	})
	if err := w.StartScan(); err == nil {
		t.Errorf("StartScan should fail when the supplicant is busy")
	}
}

func TestWPAWorkerJoin(t *testing.T) {
	w, s := newWorker(t, func(cmd string) string {
		if cmd == "ADD_NETWORK" {
			return "7\n"
		}
		return ""
	})

	id, err := w.AddNetwork(NewWPA2PSK("Home", "hunter2"))
	if err != nil {
		t.Fatalf("AddNetwork failed: %v", err)
	}
	if id != 7 {
		t.Errorf("Incorrect network id. got: %v, want: 7", id)
	}
	if err := w.Disconnect(); err != nil {
		t.Errorf("Disconnect failed: %v", err)
	}
	if err := w.EnableNetwork(id); err != nil {
		t.Errorf("EnableNetwork failed: %v", err)
	}

	for _, want := range []string{
		`SET_NETWORK 7 ssid "Home"`,
		"SET_NETWORK 7 psk ",
		"SET_NETWORK 7 proto RSN",
		"SET_NETWORK 7 key_mgmt WPA-PSK",
		"SET_NETWORK 7 pairwise CCMP TKIP",
		"SET_NETWORK 7 group CCMP TKIP",
		"DISCONNECT",
		"SELECT_NETWORK 7",
	} {
		if !s.Sent(want) {
			t.Errorf("Supplicant never got %q, got %q", want, s.Commands())
		}
	}
	for _, c := range s.Commands() {
		if strings.Contains(c, "hunter2") {
			t.Errorf("passphrase sent in the clear: %q", c)
		}
	}
}

func TestWPAWorkerJoinRejected(t *testing.T) {
	w, s := newWorker(t, func(cmd string) string {
		switch {
		case cmd == "ADD_NETWORK":
			return "2\n"
		case strings.HasPrefix(cmd, "SET_NETWORK 2 proto"):
			return "FAIL\n"
		}
		return ""
	})

	if _, err := w.AddNetwork(NewWPA2PSK("Home", "hunter2")); err == nil {
		t.Fatalf("AddNetwork should fail")
	}
	if !s.Sent("REMOVE_NETWORK 2") {
		t.Errorf("A half configured network should be removed, got %q", s.Commands())
	}
	if err := w.EnableNetwork(-1); err == nil {
		t.Errorf("EnableNetwork(-1) should fail")
	}
}

func TestWPAWorkerJoinCleanupFailureLogged(t *testing.T) {
	hook := test.NewGlobal()
	defer log.StandardLogger().ReplaceHooks(make(log.LevelHooks))

	w, _ := newWorker(t, func(cmd string) string {
		switch {
		case cmd == "ADD_NETWORK":
			return "4\n"
		case strings.HasPrefix(cmd, "SET_NETWORK 4 ssid"), cmd == "REMOVE_NETWORK 4":
			return "FAIL\n"
		}
		return ""
	})

	if _, err := w.AddNetwork(NewWPA2PSK("Home", "hunter2")); err == nil {
		t.Fatalf("AddNetwork should fail")
	}
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel && strings.Contains(e.Message, "network 4") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("A failed REMOVE_NETWORK should be logged as a warning")
	}
}

func TestWPAWorkerReconnectsAfterTimeout(t *testing.T) {
	release := make(chan struct{})
	w, s := newWorker(t, func(cmd string) string {
		switch cmd {
		case "SCAN_RESULTS":
			<-release
			return scanTable
		case "ADD_NETWORK":
			return "3\n"
		}
		return ""
	})
	w.Timeout = 100 * time.Millisecond

	if _, err := w.ScanResults(); err == nil {
		close(release)
		t.Fatalf("ScanResults should time out")
	}
	// the late table goes to the dropped socket
	close(release)

	id, err := w.AddNetwork(NewWPA2PSK("Home", "hunter2"))
	if err != nil {
		t.Fatalf("AddNetwork after a timeout failed: %v", err)
	}
	if id != 3 {
		t.Errorf("Incorrect network id. got: %v, want: 3", id)
	}
	if !s.Sent("SET_NETWORK 3 ssid") {
		t.Errorf("Supplicant never got the network settings, got %q", s.Commands())
	}
}

func TestWPAWorkerRadio(t *testing.T) {
	w, _ := newWorker(t, nil)
	r := w.radio.(*fakeRadio)

	on, err := w.RadioEnabled()
	if err != nil || on {
		t.Fatalf("RadioEnabled = %v, %v, want false, nil", on, err)
	}
	if err := w.SetRadioEnabled(true); err != nil {
		t.Fatalf("SetRadioEnabled failed: %v", err)
	}
	if !r.on || r.calls != 1 {
		t.Errorf("Radio was not switched on")
	}
}

func TestWPAWorkerLazyDial(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWPAWorker(dir, "wlan0", &fakeRadio{})
	if err != nil {
		t.Fatalf("NewWPAWorker should not need the socket: %v", err)
	}
	defer w.Close()

	if err := w.StartScan(); err == nil {
		t.Fatalf("StartScan without a supplicant should fail")
	}

	s, err := wpatest.NewServer(dir, "wlan0", nil)
	if err != nil {
		t.Fatalf("Fail to start fake supplicant: %v", err)
	}
	defer s.Close()
	if err := w.StartScan(); err != nil {
		t.Errorf("StartScan should succeed once the supplicant is up: %v", err)
	}

	if _, err := NewWPAWorker(dir, "", nil); err == nil {
		t.Errorf("NewWPAWorker without an interface should fail")
	}
}
