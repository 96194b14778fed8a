// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wpa talks to wpa_supplicant over its control interface.
package wpa

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDir is where wpa_supplicant creates its per-interface sockets.
const DefaultDir = "/var/run/wpa_supplicant"

const (
	replyTimeout = 10 * time.Second
	bufSize      = 16384
)

var counter uint32

// ReplyError is returned when wpa_supplicant answers a command with
// anything but OK.
type ReplyError struct {
	Cmd   string
	Reply string
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("wpa: %s: %s", e.Cmd, e.Reply)
}

// TimeoutError is returned when no reply to Cmd arrived in time. The reply
// may still show up later, so the Conn should not be used for more requests.
type TimeoutError struct {
	Cmd string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("wpa: %s: no reply", e.Cmd)
}

// Conn is one control connection to wpa_supplicant.
// A Conn used for events (see Attach) must not be used for requests.
type Conn struct {
	c       *net.UnixConn
	local   string
	remote  string
	Timeout time.Duration

	mu       sync.Mutex
	attached bool
	events   chan Event
}

// Dial opens a control connection to the socket for iface under dir.
func Dial(dir, iface string) (*Conn, error) {
	remote := filepath.Join(dir, iface)
	local := filepath.Join(os.TempDir(), fmt.Sprintf("wpa_ctrl_%d-%d", os.Getpid(), atomic.AddUint32(&counter, 1)))
	os.Remove(local)

	c, err := net.DialUnix("unixgram",
		&net.UnixAddr{Name: local, Net: "unixgram"},
		&net.UnixAddr{Name: remote, Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("wpa: dial %s: %v", remote, err)
	}
	return &Conn{c: c, local: local, remote: remote, Timeout: replyTimeout}, nil
}

// Request sends cmd and returns the raw reply.
func (c *Conn) Request(cmd string) (string, error) {
	if err := c.c.SetDeadline(time.Now().Add(c.Timeout)); err != nil {
		return "", err
	}
	if _, err := c.c.Write([]byte(cmd)); err != nil {
		return "", fmt.Errorf("wpa: %s: %v", cmd, err)
	}

	buf := make([]byte, bufSize)
	for {
		n, err := c.c.Read(buf)
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return "", &TimeoutError{Cmd: cmd}
		}
		if err != nil {
			return "", fmt.Errorf("wpa: %s: %v", cmd, err)
		}
		reply := string(buf[:n])
		// unsolicited events look like "<3>CTRL-EVENT-..."
		if strings.HasPrefix(reply, "<") {
			continue
		}
		return reply, nil
	}
}

// Command sends cmd and expects OK back.
func (c *Conn) Command(cmd string) error {
	reply, err := c.Request(cmd)
	if err != nil {
		return err
	}
	if strings.TrimSpace(reply) != "OK" {
		return &ReplyError{Cmd: cmd, Reply: strings.TrimSpace(reply)}
	}
	return nil
}

// Attach registers c as an event monitor and returns the event stream.
// The channel is closed when the connection is closed.
func (c *Conn) Attach() (<-chan Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attached {
		return c.events, nil
	}
	if err := c.Command("ATTACH"); err != nil {
		return nil, err
	}
	if err := c.c.SetDeadline(time.Time{}); err != nil {
		return nil, err
	}
	c.attached = true
	c.events = make(chan Event, 16)
	go c.readEvents()
	return c.events, nil
}

func (c *Conn) readEvents() {
	defer close(c.events)
	buf := make([]byte, bufSize)
	for {
		n, err := c.c.Read(buf)
		if err != nil {
			return
		}
		ev, ok := ParseEvent(string(buf[:n]))
		if !ok {
			continue
		}
		c.events <- ev
	}
}

// Close detaches if needed and releases the socket.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.attached {
		c.c.Write([]byte("DETACH"))
		c.attached = false
	}
	c.mu.Unlock()
	err := c.c.Close()
	os.Remove(c.local)
	return err
}
