/*
 * === This file is part of the WSL Distro Launcher ===
 *
 * Copyright 2024-2026 the WSL Distro Launcher authors.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package splash controls the lifecycle of the splash window shown while
// the distro boots: launched once, toggled or reordered while the boot
// proceeds, closed exactly once.
package splash

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/wsl-distro/launcher/common/logger"
	"github.com/wsl-distro/launcher/launcher/sm"
)

var log = logger.New(logrus.StandardLogger(), "splash")

// Event is the closed set of requests the splash controller accepts.
type Event interface{ isSplashEvent() }

// Run launches the splash application and shows its window.
type Run struct{}

// ToggleVisibility hides a visible window and shows a hidden one.
type ToggleVisibility struct{}

// PlaceBehind reorders the splash window behind another window,
// making it visible again regardless of its prior visibility.
type PlaceBehind struct{ Other Window }

// Close requests a graceful close of the splash window. One-shot.
type Close struct{}

func (Run) isSplashEvent()              {}
func (ToggleVisibility) isSplashEvent() {}
func (PlaceBehind) isSplashEvent()      {}
func (Close) isSplashEvent()            {}

// Controller owns the splash window lifecycle. It is single-threaded:
// one goroutine feeds it events through Apply, and no other component
// may manipulate the window while the controller tracks it.
type Controller struct {
	exePath  string
	out      *os.File
	provider Provider
	machine  *sm.Machine[Event]
}

// NewController returns a controller in the Idle state, bound to the
// given provider for its whole lifetime.
func NewController(exePath string, out *os.File, provider Provider) *Controller {
	c := &Controller{
		exePath:  exePath,
		out:      out,
		provider: provider,
	}
	c.machine = sm.New[Event](&idle{c: c})
	return c
}

// Apply submits one event. It returns false when the current state
// defines no handler for the event kind, leaving the state untouched.
func (c *Controller) Apply(event Event) bool {
	return c.machine.Apply(event)
}

func (c *Controller) IsIdle() bool    { return sm.Is[*idle](c.machine) }
func (c *Controller) IsVisible() bool { return sm.Is[*visible](c.machine) }
func (c *Controller) IsHidden() bool  { return sm.Is[*hidden](c.machine) }

// IsClosed reports whether the window reached its terminal state.
func (c *Controller) IsClosed() bool { return sm.Is[*shouldBeClosed](c.machine) }

// The closed set of splash states.
var _ = [...]sm.State[Event]{
	(*idle)(nil),
	(*visible)(nil),
	(*hidden)(nil),
	(*shouldBeClosed)(nil),
}

// idle: nothing launched yet. Only Run applies.
type idle struct{ c *Controller }

func (s *idle) OnEvent(event Event) sm.State[Event] {
	switch event.(type) {
	case Run:
		process, ok := s.c.provider.CreateProcess(s.c.exePath, s.c.out)
		if !ok {
			log.WithField("exePath", s.c.exePath).
				Error("cannot launch the splash application")
			return nil
		}
		window, ok := s.c.provider.FindWindowByThread(process.ThreadID)
		if !ok {
			// A created but unlocatable process counts as a failed
			// launch; the controller does not track it further.
			log.WithField("threadId", process.ThreadID).
				Error("cannot find the splash window")
			return nil
		}
		s.c.provider.ShowWindow(window)
		return &visible{c: s.c, window: window}
	}
	return nil
}

// visible: the splash window is on screen.
type visible struct {
	c      *Controller
	window Window
}

func (s *visible) OnEvent(event Event) sm.State[Event] {
	switch ev := event.(type) {
	case ToggleVisibility:
		s.c.provider.HideWindow(s.window)
		return &hidden{c: s.c, window: s.window}
	case PlaceBehind:
		s.c.provider.PlaceBehind(s.window, ev.Other)
		return &visible{c: s.c, window: s.window}
	case Close:
		s.c.provider.GracefulClose(s.window)
		return &shouldBeClosed{}
	}
	return nil
}

// hidden: launched but not on screen.
type hidden struct {
	c      *Controller
	window Window
}

func (s *hidden) OnEvent(event Event) sm.State[Event] {
	switch ev := event.(type) {
	case ToggleVisibility:
		s.c.provider.ShowWindow(s.window)
		return &visible{c: s.c, window: s.window}
	case PlaceBehind:
		// Reordering brings the window back regardless of visibility.
		s.c.provider.PlaceBehind(s.window, ev.Other)
		return &visible{c: s.c, window: s.window}
	case Close:
		s.c.provider.GracefulClose(s.window)
		return &shouldBeClosed{}
	}
	return nil
}

// shouldBeClosed: terminal. The graceful close was requested; no further
// window operations apply.
type shouldBeClosed struct{}

func (s *shouldBeClosed) OnEvent(event Event) sm.State[Event] {
	return nil
}
