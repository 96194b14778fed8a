// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wpatest provides a fake wpa_supplicant control socket for tests.
package wpatest

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// HandlerFunc answers one command. Returning "" means "OK\n".
type HandlerFunc func(cmd string) string

// Server is a unixgram listener speaking the control protocol.
type Server struct {
	Dir   string
	Iface string

	conn    *net.UnixConn
	handler HandlerFunc

	mu       sync.Mutex
	commands []string
	monitors map[string]*net.UnixAddr
	done     chan struct{}
}

// NewServer listens on dir/iface.
func NewServer(dir, iface string, h HandlerFunc) (*Server, error) {
	path := filepath.Join(dir, iface)
	os.Remove(path)
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		return nil, err
	}
	s := &Server{
		Dir:      dir,
		Iface:    iface,
		conn:     conn,
		handler:  h,
		monitors: make(map[string]*net.UnixAddr),
		done:     make(chan struct{}),
	}
	go s.serve()
	return s, nil
}

func (s *Server) serve() {
	defer close(s.done)
	buf := make([]byte, 4096)
	for {
		n, addr, err := s.conn.ReadFromUnix(buf)
		if err != nil {
			return
		}
		cmd := string(buf[:n])

		s.mu.Lock()
		s.commands = append(s.commands, cmd)
		var reply string
		switch cmd {
		case "ATTACH":
			s.monitors[addr.Name] = addr
			reply = "OK\n"
		case "DETACH":
			delete(s.monitors, addr.Name)
			s.mu.Unlock()
			continue
		case "PING":
			reply = "PONG\n"
		}
		s.mu.Unlock()

		if reply == "" && s.handler != nil {
			reply = s.handler(cmd)
		}
		if reply == "" {
			reply = "OK\n"
		}
		s.conn.WriteToUnix([]byte(reply), addr)
	}
}

// Send delivers an unsolicited event such as "<3>CTRL-EVENT-SCAN-RESULTS "
// to every attached monitor.
func (s *Server) Send(event string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, addr := range s.monitors {
		s.conn.WriteToUnix([]byte(event), addr)
	}
}

// Monitors returns the number of attached monitors.
func (s *Server) Monitors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.monitors)
}

// Commands returns every command received so far, ATTACH and DETACH included.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Sent reports whether a command starting with prefix was received.
func (s *Server) Sent(prefix string) bool {
	for _, c := range s.Commands() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// Close stops the server.
func (s *Server) Close() error {
	err := s.conn.Close()
	<-s.done
	os.Remove(filepath.Join(s.Dir, s.Iface))
	return err
}
