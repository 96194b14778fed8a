// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package screen is the single termui screen of wifiscan: a network list,
// a passphrase field, a status line and a transient notice line.
package screen

import (
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/nsf/termbox-go"
)

const (
	width      = 70
	listHeight = 14
	help       = "s: scan  enter: select  tab: passphrase  c: connect  q: quit"
)

// Action is what a key press asks the controller to do.
type Action int

const (
	None Action = iota
	Scan
	Select
	Connect
	Quit
)

func (a Action) String() string {
	switch a {
	case Scan:
		return "scan"
	case Select:
		return "select"
	case Connect:
		return "connect"
	case Quit:
		return "quit"
	}
	return "none"
}

type focus int

const (
	focusList focus = iota
	focusPassphrase
)

// Screen implements controller.Display on top of termui widgets.
type Screen struct {
	list       *widgets.List
	passphrase *widgets.Paragraph
	status     *widgets.Paragraph
	notice     *widgets.Paragraph
	hint       *widgets.Paragraph

	pass  []rune
	focus focus

	draw   func(...ui.Drawable)
	cursor func(x, y int, show bool)
}

func Init() error {
	return ui.Init()
}

func Close() {
	ui.Close()
}

// Events polls terminal events. Init must have been called.
func Events() <-chan ui.Event {
	return ui.PollEvents()
}

// newParagraph returns a widgets.Paragraph struct with given initial text.
func newParagraph(title, initText string, border bool, location int, ht int) *widgets.Paragraph {
	p := widgets.NewParagraph()
	p.Title = title
	p.Text = initText
	p.Border = border
	p.SetRect(0, location, width, location+ht)
	p.TextStyle.Fg = ui.ColorWhite
	return p
}

func termboxCursor(x, y int, show bool) {
	if show {
		termbox.SetCursor(x, y)
		return
	}
	termbox.HideCursor()
}

// Option configures a Screen.
type Option func(*Screen)

// Headless makes the screen keep its state without touching the terminal.
func Headless() Option {
	return func(s *Screen) {
		s.draw = func(...ui.Drawable) {}
		s.cursor = func(int, int, bool) {}
	}
}

// New lays out the screen. Nothing is drawn until Render.
func New(opts ...Option) *Screen {
	location := 0
	list := widgets.NewList()
	list.Title = "Wireless Networks"
	list.SetRect(0, location, width, location+listHeight)
	list.TextStyle.Fg = ui.ColorWhite
	list.SelectedRowStyle = ui.NewStyle(ui.ColorBlack, ui.ColorWhite)
	location += listHeight

	s := &Screen{
		list:       list,
		passphrase: newParagraph("Passphrase", "", true, location, 3),
		status:     newParagraph("Status", "", true, location+3, 3),
		notice:     newParagraph("", "", false, location+6, 2),
		hint:       newParagraph("", help, false, location+8, 2),
		draw:       ui.Render,
		cursor:     termboxCursor,
	}
	s.notice.TextStyle.Fg = ui.ColorYellow
	for _, o := range opts {
		o(s)
	}
	return s
}

// Render draws every widget.
func (s *Screen) Render() {
	s.draw(s.list, s.passphrase, s.status, s.notice, s.hint)
	s.placeCursor()
}

func (s *Screen) placeCursor() {
	if s.focus != focusPassphrase {
		s.cursor(0, 0, false)
		return
	}
	r := s.passphrase.Inner
	x := r.Min.X + len(s.pass)
	// stay inside the border once the masked text fills the field
	if x > r.Max.X-1 {
		x = r.Max.X - 1
	}
	s.cursor(x, r.Min.Y, true)
}

// ShowNetworks replaces the list rows and moves the cursor to the top.
func (s *Screen) ShowNetworks(labels []string) {
	s.list.Rows = labels
	s.list.SelectedRow = 0
	s.draw(s.list)
}

func (s *Screen) SetStatus(msg string) {
	s.status.Text = msg
	s.draw(s.status)
}

// Notice shows msg until the next key press.
func (s *Screen) Notice(msg string) {
	s.notice.Text = msg
	s.draw(s.notice)
}

func (s *Screen) Rows() []string {
	return s.list.Rows
}

// Cursor is the index of the highlighted row, or -1 for an empty list.
func (s *Screen) Cursor() int {
	if len(s.list.Rows) == 0 {
		return -1
	}
	return s.list.SelectedRow
}

func (s *Screen) Password() string {
	return string(s.pass)
}

func (s *Screen) StatusText() string {
	return s.status.Text
}

func (s *Screen) NoticeText() string {
	return s.notice.Text
}

func (s *Screen) setFocus(f focus) {
	s.focus = f
	s.list.BorderStyle.Fg = ui.ColorWhite
	s.passphrase.BorderStyle.Fg = ui.ColorWhite
	if f == focusList {
		s.list.BorderStyle.Fg = ui.ColorCyan
	} else {
		s.passphrase.BorderStyle.Fg = ui.ColorCyan
	}
	s.draw(s.list, s.passphrase)
	s.placeCursor()
}

func (s *Screen) setPass(p []rune) {
	s.pass = p
	s.passphrase.Text = strings.Repeat("*", len(p))
	s.draw(s.passphrase)
	s.placeCursor()
}

// HandleKey applies one termui key id and returns the action it asks for.
func (s *Screen) HandleKey(k string) Action {
	if s.notice.Text != "" {
		s.notice.Text = ""
		s.draw(s.notice)
	}

	switch k {
	case "<C-c>", "<C-d>":
		return Quit
	case "<Tab>":
		if s.focus == focusList {
			s.setFocus(focusPassphrase)
		} else {
			s.setFocus(focusList)
		}
		return None
	}

	if s.focus == focusPassphrase {
		return s.passphraseKey(k)
	}
	return s.listKey(k)
}

func (s *Screen) listKey(k string) Action {
	switch k {
	case "q":
		return Quit
	case "s":
		return Scan
	case "c":
		return Connect
	case "<Enter>":
		if len(s.list.Rows) == 0 {
			return None
		}
		return Select
	}

	// termui's List scrolls to row -1 on an empty list
	if len(s.list.Rows) == 0 {
		return None
	}
	switch k {
	case "<Up>", "k", "<MouseWheelUp>":
		s.list.ScrollUp()
	case "<Down>", "j", "<MouseWheelDown>":
		s.list.ScrollDown()
	case "<PageUp>", "<Left>":
		s.list.ScrollPageUp()
	case "<PageDown>", "<Right>":
		s.list.ScrollPageDown()
	case "<Home>":
		s.list.ScrollTop()
	case "<End>":
		s.list.ScrollBottom()
	default:
		return None
	}
	s.draw(s.list)
	return None
}

func (s *Screen) passphraseKey(k string) Action {
	switch k {
	case "<Enter>":
		return Connect
	case "<Escape>":
		s.setFocus(focusList)
	case "<Backspace>", "<C-<Backspace>>":
		if len(s.pass) > 0 {
			s.setPass(s.pass[:len(s.pass)-1])
		}
	case "<Space>":
		s.setPass(append(s.pass, ' '))
	default:
		// the termui use a string begin at '<' to represent some special keys
		// for example the 'F1' key will be parsed to "<F1>" string.
		if len(k) > 1 && k[0:1] == "<" {
			return None
		}
		s.setPass(append(s.pass, []rune(k)...))
	}
	return None
}
