// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"fmt"
	"sync"
)

var _ = Manager(&StubWorker{})

// StubWorker is an in-memory Manager. It records every call it gets.
type StubWorker struct {
	mu sync.Mutex

	Options []ScanResult
	Radio   bool

	ScanErr   error
	AddErr    error
	EnableErr error

	// AutoComplete makes StartScan deliver a successful ScanEvent right away.
	AutoComplete bool

	Calls    []string
	Requests []JoinRequest

	nextID int
	subs   fanout
}

func NewStubWorker(options ...ScanResult) *StubWorker {
	return &StubWorker{Options: options, Radio: true}
}

func (w *StubWorker) record(call string) {
	w.Calls = append(w.Calls, call)
}

func (w *StubWorker) RadioEnabled() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("RadioEnabled")
	return w.Radio, nil
}

func (w *StubWorker) SetRadioEnabled(on bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record(fmt.Sprintf("SetRadioEnabled %v", on))
	w.Radio = on
	return nil
}

func (w *StubWorker) StartScan() error {
	w.mu.Lock()
	w.record("StartScan")
	err, auto := w.ScanErr, w.AutoComplete
	w.mu.Unlock()
	if err == nil && auto {
		w.subs.send(ScanEvent{Success: true})
	}
	return err
}

func (w *StubWorker) ScanResults() ([]ScanResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("ScanResults")
	return append([]ScanResult(nil), w.Options...), nil
}

// SetResults replaces what the next ScanResults call returns.
func (w *StubWorker) SetResults(options ...ScanResult) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Options = options
}

func (w *StubWorker) Subscribe() (*Subscription, error) {
	w.mu.Lock()
	w.record("Subscribe")
	w.mu.Unlock()
	return w.subs.add(), nil
}

// Complete delivers a scan completion to every subscriber.
func (w *StubWorker) Complete(success bool) {
	w.subs.send(ScanEvent{Success: success})
}

// Subscribers returns the number of live subscriptions.
func (w *StubWorker) Subscribers() int {
	return w.subs.len()
}

func (w *StubWorker) Disconnect() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("Disconnect")
	return nil
}

func (w *StubWorker) AddNetwork(req JoinRequest) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("AddNetwork " + Quote(req.SSID))
	if w.AddErr != nil {
		return -1, w.AddErr
	}
	w.Requests = append(w.Requests, req)
	id := w.nextID
	w.nextID++
	return id, nil
}

func (w *StubWorker) EnableNetwork(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record(fmt.Sprintf("EnableNetwork %d", id))
	return w.EnableErr
}

// CallLog returns a copy of the recorded calls.
func (w *StubWorker) CallLog() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.Calls...)
}

func (w *StubWorker) Close() error {
	return nil
}
