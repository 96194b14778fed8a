// Copyright 2019 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dhclient

import (
	"context"
	"fmt"
	"time"

	"github.com/u-root/u-root/pkg/dhclient"
	"github.com/vishvananda/netlink"
)

// Config controls a lease request.
type Config struct {
	Timeout time.Duration // per packet
	Retry   int
	Verbose bool
	IPv6    bool
}

// Lease requests a DHCP lease for ifName and configures the interface with it.
// Progress messages are sent on the returned channel, which is closed when done.
func Lease(ctx context.Context, ifName string, cfg Config) <-chan string {
	cl := make(chan string, 4)

	link, err := netlink.LinkByName(ifName)
	if err != nil {
		cl <- fmt.Sprintf("Can't find link %s: %v", ifName, err)
		close(cl)
		return cl
	}

	go configure(ctx, link, cl, cfg)
	return cl
}

func configure(ctx context.Context, link netlink.Link, cl chan<- string, cfg Config) {
	defer close(cl)

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout*time.Duration(1<<uint(cfg.Retry)))
	defer cancel()

	c := dhclient.Config{
		Timeout: cfg.Timeout,
		Retries: cfg.Retry,
	}
	if cfg.Verbose {
		c.LogLevel = dhclient.LogSummary
	}
	// association happens after the join request returns, give the link time to come up
	r := dhclient.SendRequests(ctx, []netlink.Link{link}, true, cfg.IPv6, c, 30*time.Second)

	name := link.Attrs().Name
	for {
		select {
		case <-ctx.Done():
			cl <- fmt.Sprintf("Done with dhclient: %v", ctx.Err())
			return

		case result, ok := <-r:
			if !ok {
				return
			}
			if result.Err != nil {
				cl <- fmt.Sprintf("Could not configure %s: %v", name, result.Err)
			} else if err := result.Lease.Configure(); err != nil {
				cl <- fmt.Sprintf("Could not configure %s: %v", name, err)
			} else {
				cl <- fmt.Sprintf("Configured %s with %s", name, result.Lease)
			}
		}
	}
}
