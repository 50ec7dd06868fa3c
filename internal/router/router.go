// Package router keeps the TUI's screen stack. Screens navigate by
// returning one of the *Msg types below from a command.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifecompass/internal/screen"
)

type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }
	// PopScreenMsg closes the top screen unless it is the last one.
	PopScreenMsg struct{}
	// ReplaceScreenMsg swaps the top screen, e.g. welcome → home or
	// quiz → report, so Esc does not return to it.
	ReplaceScreenMsg struct{ Screen screen.Screen }
	// PopToRootMsg closes everything above the bottom screen.
	PopToRootMsg struct{}
)

// Router is a stack of screens; only the top one sees input.
type Router struct {
	stack []screen.Screen
}

// New starts a stack at root. The caller runs root's Init.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Replace puts s in place of the top screen and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if n := len(r.stack); n > 0 {
		r.stack[n-1] = s
	} else {
		r.stack = []screen.Screen{s}
	}
	return s.Init()
}

func (r *Router) PopToRoot() {
	r.stack = r.stack[:min(len(r.stack), 1)]
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	case PopToRootMsg:
		r.PopToRoot()
		return nil
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
