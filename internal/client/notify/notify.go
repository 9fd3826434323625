// Package notify shows modal-style messages to the user.
package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

type Icon string

const (
	IconSuccess Icon = "success"
	IconError   Icon = "error"
	IconWarning Icon = "warning"
	IconInfo    Icon = "info"
)

type Notification struct {
	Title string
	Text  string
	Icon  Icon
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Terminal draws each notification as a box on w.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

var glyphs = map[Icon]string{
	IconSuccess: "[ok]",
	IconError:   "[x]",
	IconWarning: "[!]",
	IconInfo:    "[i]",
}

func (t *Terminal) Notify(_ context.Context, n Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()

	head := strings.TrimSpace(glyphs[n.Icon] + " " + n.Title)
	lines := append([]string{head}, strings.Split(n.Text, "\n")...)

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	border := "+" + strings.Repeat("-", width+2) + "+"

	fmt.Fprintln(t.w, border)
	for i, l := range lines {
		fmt.Fprintf(t.w, "| %s%s |\n", l, strings.Repeat(" ", width-utf8.RuneCountInString(l)))
		if i == 0 {
			fmt.Fprintln(t.w, border)
		}
	}
	fmt.Fprintln(t.w, border)
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.all...)
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.all) == 0 {
		return Notification{}, false
	}
	return r.all[len(r.all)-1], true
}
