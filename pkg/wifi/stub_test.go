// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"testing"
)

func TestStubSubscription(t *testing.T) {
	w := NewStubWorker(ScanResult{SSID: "Cafe", Level: -40})
	w.AutoComplete = true

	sub, err := w.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if err := w.StartScan(); err != nil {
		t.Fatalf("StartScan failed: %v", err)
	}

	select {
	case ev := <-sub.C:
		if !ev.Success {
			t.Errorf("Scan event should be successful")
		}
	default:
		t.Fatalf("No scan event delivered")
	}

	// a second completion while nothing drains is coalesced, not blocking
	w.Complete(false)
	w.Complete(true)
	if ev := <-sub.C; ev.Success {
		t.Errorf("The first pending event should be kept")
	}

	sub.Close()
	sub.Close()
	if n := w.Subscribers(); n != 0 {
		t.Errorf("Incorrect subscriber count after Close. got: %v, want: 0", n)
	}
}

func TestStubCalls(t *testing.T) {
	w := NewStubWorker()
	w.Radio = false
	w.SetRadioEnabled(true)
	id, err := w.AddNetwork(NewWPA2PSK("Home", "hunter2"))
	if err != nil {
		t.Fatalf("AddNetwork failed: %v", err)
	}
	w.EnableNetwork(id)

	want := []string{"SetRadioEnabled true", `AddNetwork "Home"`, "EnableNetwork 0"}
	got := w.CallLog()
	if len(got) != len(want) {
		t.Fatalf("Incorrect calls. got: %v, want: %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Incorrect call %d. got: %v, want: %v", i, got[i], want[i])
		}
	}
}
