// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/u-root/wifiscan/pkg/wpa"
)

var _ = Manager(&WPAWorker{})

// WPAWorker implements Manager on top of a running wpa_supplicant.
type WPAWorker struct {
	Interface string
	Dir       string
	// Timeout overrides the reply timeout of new control connections.
	Timeout time.Duration

	radio Radio

	mu   sync.Mutex
	ctrl *wpa.Conn
	mon  *wpa.Conn
	subs fanout
}

// NewWPAWorker returns a worker for the supplicant socket of iface under
// dir. The socket is dialed on first use, so the worker can be created
// before the process is allowed to talk to the supplicant.
func NewWPAWorker(dir, iface string, radio Radio) (*WPAWorker, error) {
	if iface == "" {
		return nil, fmt.Errorf("no interface given")
	}
	if dir == "" {
		dir = wpa.DefaultDir
	}
	if radio == nil {
		radio = &LinkRadio{}
	}
	return &WPAWorker{Interface: iface, Dir: dir, radio: radio}, nil
}

func (w *WPAWorker) conn() (*wpa.Conn, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ctrl == nil {
		c, err := wpa.Dial(w.Dir, w.Interface)
		if err != nil {
			return nil, err
		}
		if w.Timeout > 0 {
			c.Timeout = w.Timeout
		}
		w.ctrl = c
	}
	return w.ctrl, nil
}

// drop closes c after a timed out request, so a late reply cannot be read
// as the answer to the next command. The next request dials again.
func (w *WPAWorker) drop(c *wpa.Conn, err error) {
	var te *wpa.TimeoutError
	if !errors.As(err, &te) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ctrl != c {
		return
	}
	log.Warnf("%s: %v, reconnecting", w.Interface, err)
	c.Close()
	w.ctrl = nil
}

func (w *WPAWorker) command(cmd string) error {
	c, err := w.conn()
	if err != nil {
		return err
	}
	err = c.Command(cmd)
	w.drop(c, err)
	return err
}

func (w *WPAWorker) request(cmd string) (string, error) {
	c, err := w.conn()
	if err != nil {
		return "", err
	}
	reply, err := c.Request(cmd)
	w.drop(c, err)
	return reply, err
}

func (w *WPAWorker) RadioEnabled() (bool, error) {
	return w.radio.Enabled(w.Interface)
}

func (w *WPAWorker) SetRadioEnabled(on bool) error {
	log.Debugf("%s: set radio enabled=%v", w.Interface, on)
	return w.radio.SetEnabled(w.Interface, on)
}

func (w *WPAWorker) StartScan() error {
	return w.command("SCAN")
}

func (w *WPAWorker) ScanResults() ([]ScanResult, error) {
	reply, err := w.request("SCAN_RESULTS")
	if err != nil {
		return nil, err
	}
	bss, err := wpa.ParseScanResults(reply)
	if err != nil {
		return nil, err
	}
	res := make([]ScanResult, 0, len(bss))
	for _, b := range bss {
		res = append(res, ScanResult{
			SSID:      b.SSID,
			Level:     b.Signal,
			BSSID:     b.BSSID,
			Frequency: b.Frequency,
			Flags:     b.Flags,
		})
	}
	return res, nil
}

// Subscribe attaches a monitor socket on first use and shares it between
// subscribers.
func (w *WPAWorker) Subscribe() (*Subscription, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mon == nil {
		mon, err := wpa.Dial(w.Dir, w.Interface)
		if err != nil {
			return nil, err
		}
		events, err := mon.Attach()
		if err != nil {
			mon.Close()
			return nil, err
		}
		w.mon = mon
		go w.dispatch(events)
	}
	return w.subs.add(), nil
}

func (w *WPAWorker) dispatch(events <-chan wpa.Event) {
	for ev := range events {
		switch ev.Name {
		case wpa.EventScanResults:
			w.subs.send(ScanEvent{Success: true})
		case wpa.EventScanFailed:
			log.Debugf("%s: scan failed: %s", w.Interface, ev.Args)
			w.subs.send(ScanEvent{Success: false})
		default:
			log.Debugf("%s: %s %s", w.Interface, ev.Name, ev.Args)
		}
	}
}

func (w *WPAWorker) Disconnect() error {
	return w.command("DISCONNECT")
}

// AddNetwork creates a network block and fills it from req. A partly
// configured block is removed again on failure.
func (w *WPAWorker) AddNetwork(req JoinRequest) (int, error) {
	reply, err := w.request("ADD_NETWORK")
	if err != nil {
		return -1, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil {
		return -1, &wpa.ReplyError{Cmd: "ADD_NETWORK", Reply: strings.TrimSpace(reply)}
	}

	for _, s := range req.Settings() {
		if err := w.command(fmt.Sprintf("SET_NETWORK %d %s %s", id, s.Name, s.Value)); err != nil {
			if rerr := w.command(fmt.Sprintf("REMOVE_NETWORK %d", id)); rerr != nil {
				log.Warnf("%s: network %d left half configured: %v", w.Interface, id, rerr)
			}
			// the error text carries the value, keep the key out of it
			return -1, fmt.Errorf("set %s on network %d failed", s.Name, id)
		}
	}
	log.Debugf("%s: added network %d for %s", w.Interface, id, req.SSID)
	return id, nil
}

// EnableNetwork selects id, which enables it and disables every other network.
func (w *WPAWorker) EnableNetwork(id int) error {
	if id < 0 {
		return fmt.Errorf("invalid network id %d", id)
	}
	return w.command(fmt.Sprintf("SELECT_NETWORK %d", id))
}

func (w *WPAWorker) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mon != nil {
		w.mon.Close()
		w.mon = nil
	}
	if w.ctrl == nil {
		return nil
	}
	err := w.ctrl.Close()
	w.ctrl = nil
	return err
}
