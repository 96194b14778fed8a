package main

import (
	ui "github.com/gizak/termui/v3"
	log "github.com/sirupsen/logrus"
	"github.com/u-root/wifiscan/pkg/controller"
	"github.com/u-root/wifiscan/pkg/screen"
)

// run is the single event loop: terminal input and scan completions are
// both handled here, so the controller is never used concurrently.
// A pending scan completion is handled before the next key.
func run(ctrl *controller.Controller, scr *screen.Screen, uiEvents <-chan ui.Event) error {
	scr.Render()
	for {
		select {
		case ev := <-ctrl.Events():
			ctrl.HandleScanEvent(ev)
			continue
		default:
		}

		select {
		case ev := <-ctrl.Events():
			ctrl.HandleScanEvent(ev)

		case e, ok := <-uiEvents:
			if !ok {
				return nil
			}
			switch e.Type {
			case ui.ResizeEvent:
				scr.Render()
				continue
			case ui.KeyboardEvent, ui.MouseEvent:
			default:
				continue
			}

			action := scr.HandleKey(e.ID)
			if action != screen.None {
				log.Debugf("key %s: %v", e.ID, action)
			}
			switch action {
			case screen.Scan:
				ctrl.RequestScan()
			case screen.Select:
				ctrl.Select(scr.Cursor())
			case screen.Connect:
				ctrl.Connect(scr.Password())
			case screen.Quit:
				return nil
			}
		}
	}
}
