// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// wifiscan scans for wireless networks and joins one with a passphrase.
//
// It talks to a running wpa_supplicant through its control socket. Use
// --stub to try the screen without wireless hardware.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/u-root/wifiscan/pkg/controller"
	"github.com/u-root/wifiscan/pkg/dhclient"
	"github.com/u-root/wifiscan/pkg/permission"
	"github.com/u-root/wifiscan/pkg/screen"
	"github.com/u-root/wifiscan/pkg/wifi"
	"github.com/u-root/wifiscan/pkg/wpa"
)

var (
	iface   string
	ctrlDir string
	logFile string
	verbose bool
	dhcp    bool
	stub    bool
)

var rootCmd = &cobra.Command{
	Use:          "wifiscan",
	Short:        "Scan for wireless networks and join one",
	Long:         `wifiscan lists nearby wireless networks and joins the selected one as WPA2-Personal.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		closeLog, err := setupLogging(logFile, verbose)
		if err != nil {
			return err
		}
		defer closeLog()
		return wifiscan()
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&iface, "interface", "i", "", "Wireless interface (default: first nl80211 station)")
	f.StringVar(&ctrlDir, "ctrl-dir", wpa.DefaultDir, "wpa_supplicant control socket directory")
	f.StringVar(&logFile, "log-file", "wifiscan.log", "Log file, the terminal belongs to the UI")
	f.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	f.BoolVar(&dhcp, "dhcp", false, "Request a DHCP lease after a join request is accepted")
	f.BoolVar(&stub, "stub", false, "Use a fake network manager")
}

func setupLogging(path string, verbose bool) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	log.SetOutput(f)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	return func() { f.Close() }, nil
}

// demoNetworks is what --stub reports.
var demoNetworks = []wifi.ScanResult{
	{SSID: "Cafe", Level: -40, Frequency: 2412},
	{SSID: "Home", Level: -70, Frequency: 5180},
	{SSID: "Library Guest", Level: -82, Frequency: 2437},
}

func newManager() (wifi.Manager, permission.Checker, string, error) {
	if stub {
		w := wifi.NewStubWorker(demoNetworks...)
		w.AutoComplete = true
		return w, permission.Always{}, "stub0", nil
	}

	name := iface
	if name == "" {
		var err error
		if name, err = wifi.DefaultInterface(); err != nil {
			return nil, nil, "", err
		}
	} else if !wifi.IsWireless(name) {
		return nil, nil, "", fmt.Errorf("%s: only wireless network interfaces are supported", name)
	}

	w, err := wifi.NewWPAWorker(ctrlDir, name, &wifi.LinkRadio{})
	if err != nil {
		return nil, nil, "", err
	}
	return w, &permission.Socket{Dir: ctrlDir, Iface: name}, name, nil
}

// lease runs DHCP on name in the background. Results only go to the log.
func lease(name string) func(string) {
	return func(ssid string) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			for m := range dhclient.Lease(ctx, name, dhclient.Config{Retry: 3, Verbose: verbose}) {
				log.Infof("dhcp %s (%s): %s", name, ssid, m)
			}
		}()
	}
}

func wifiscan() error {
	mgr, perm, name, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()
	log.Infof("using interface %s", name)

	var opts []controller.Option
	if dhcp && !stub {
		opts = append(opts, controller.OnJoin(lease(name)))
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %v", err)
	}
	defer screen.Close()

	scr := screen.New()
	ctrl := controller.New(mgr, perm, scr, opts...)
	defer ctrl.Close()

	return run(ctrl, scr, screen.Events())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
