// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package controller sequences permission check, scan, result rendering
// and network join for the single wifiscan screen.
//
// A Controller is not safe for concurrent use. All methods, including
// HandleScanEvent, are expected to be called from one event loop.
package controller

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/u-root/wifiscan/pkg/permission"
	"github.com/u-root/wifiscan/pkg/wifi"
)

const (
	StatusScanning      = "Scanning..."
	StatusScanFailed    = "Scan failed"
	StatusConnectFailed = "Failed to connect"
	NoticeMissingInput  = "Select network and enter password"
)

// Display is the user facing surface the controller reports to.
type Display interface {
	// ShowNetworks replaces the rendered network list.
	ShowNetworks(labels []string)
	// SetStatus replaces the status line.
	SetStatus(msg string)
	// Notice shows a transient message.
	Notice(msg string)
}

// Controller owns the scan results and the selection.
type Controller struct {
	mgr     wifi.Manager
	perm    permission.Checker
	display Display
	joined  func(ssid string)

	results  []wifi.ScanResult
	// selected is the quoted form of name, set together.
	name     string
	selected string
	sub      *wifi.Subscription
}

// Option configures a Controller.
type Option func(*Controller)

// OnJoin registers f to run after the platform accepted a join request.
// It is not told whether association succeeds.
func OnJoin(f func(ssid string)) Option {
	return func(c *Controller) {
		c.joined = f
	}
}

// New binds the controller to the network manager and display.
func New(mgr wifi.Manager, perm permission.Checker, display Display, opts ...Option) *Controller {
	c := &Controller{mgr: mgr, perm: perm, display: display}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Events returns the scan completion stream, or nil before the first scan.
func (c *Controller) Events() <-chan wifi.ScanEvent {
	if c.sub == nil {
		return nil
	}
	return c.sub.C
}

// Results returns the scan results currently held.
func (c *Controller) Results() []wifi.ScanResult {
	return c.results
}

// Selected returns the quoted name of the selected network.
func (c *Controller) Selected() (string, bool) {
	return c.selected, c.selected != ""
}

// RequestScan checks the permission, makes sure the radio is on and asks
// for a scan. Without the permission it only requests it; the scan is not
// started once the permission is granted, the user has to ask again.
func (c *Controller) RequestScan() {
	if !c.perm.Granted() {
		c.display.SetStatus(c.perm.Request())
		return
	}

	on, err := c.mgr.RadioEnabled()
	if err != nil {
		log.Warnf("radio state: %v", err)
	}
	if !on {
		if err := c.mgr.SetRadioEnabled(true); err != nil {
			log.Errorf("enable radio: %v", err)
			c.display.SetStatus(StatusScanFailed)
			return
		}
	}

	if c.sub == nil {
		sub, err := c.mgr.Subscribe()
		if err != nil {
			log.Errorf("subscribe to scan results: %v", err)
			c.display.SetStatus(StatusScanFailed)
			return
		}
		c.sub = sub
	}

	if err := c.mgr.StartScan(); err != nil {
		log.Errorf("start scan: %v", err)
		c.display.SetStatus(StatusScanFailed)
		return
	}
	c.display.SetStatus(StatusScanning)
}

// HandleScanEvent consumes one scan completion.
func (c *Controller) HandleScanEvent(ev wifi.ScanEvent) {
	if !ev.Success {
		c.display.SetStatus(StatusScanFailed)
		return
	}

	res, err := c.mgr.ScanResults()
	if err != nil {
		log.Errorf("read scan results: %v", err)
		c.display.SetStatus(StatusScanFailed)
		return
	}

	c.results = res
	labels := make([]string, 0, len(res))
	for _, r := range res {
		labels = append(labels, r.String())
	}
	c.display.ShowNetworks(labels)
	c.display.SetStatus(fmt.Sprintf("Found %d networks", len(res)))
}

// Select records the network at index i of the held results.
func (c *Controller) Select(i int) {
	if i < 0 || i >= len(c.results) {
		log.Debugf("selection %d out of range (%d results)", i, len(c.results))
		return
	}
	c.name = c.results[i].SSID
	c.selected = wifi.Quote(c.name)
	c.display.SetStatus("Selected: " + c.name)
}

// Connect joins the selected network with pass. Nothing reaches the
// platform unless a network is selected and pass is not empty. The status
// reflects whether the request was accepted, not whether the device joined.
func (c *Controller) Connect(pass string) {
	if c.selected == "" || pass == "" {
		c.display.Notice(NoticeMissingInput)
		return
	}

	name := c.name
	id, err := c.mgr.AddNetwork(wifi.NewWPA2PSK(name, pass))
	if err != nil {
		log.Errorf("add network %s: %v", c.selected, err)
		c.display.SetStatus(StatusConnectFailed)
		return
	}
	if err := c.mgr.Disconnect(); err != nil {
		log.Warnf("disconnect: %v", err)
	}
	if err := c.mgr.EnableNetwork(id); err != nil {
		log.Errorf("enable network %d: %v", id, err)
		c.display.SetStatus(StatusConnectFailed)
		return
	}
	c.display.SetStatus("Connecting to " + name)
	if c.joined != nil {
		c.joined(name)
	}
}

// Close releases the scan completion registration.
func (c *Controller) Close() {
	c.sub.Close()
	c.sub = nil
}
