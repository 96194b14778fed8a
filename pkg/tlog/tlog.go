// Copyright 2019 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlog

import (
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

//Testing implements testing interface
type Testing struct {
	Test *testing.T
}

//Print prints a input string
func (t Testing) Print(v ...interface{}) {
	t.Test.Log(v...)
}

//Printf prints a formated string
func (t Testing) Printf(format string, v ...interface{}) {
	t.Test.Logf(format, v...)
}

//Write lets Testing be a log output
func (t Testing) Write(p []byte) (int, error) {
	t.Test.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

//Capture sends the standard logger to t until the test ends
func Capture(t *testing.T) {
	l := log.StandardLogger()
	out, level := l.Out, l.GetLevel()
	l.SetOutput(Testing{t})
	l.SetLevel(log.DebugLevel)
	t.Cleanup(func() {
		l.SetOutput(out)
		l.SetLevel(level)
	})
}
