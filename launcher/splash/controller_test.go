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

package splash

import (
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// everythingWorks is a provider in whose realm every operation succeeds.
type everythingWorks struct {
	shown    int
	hidden   int
	reorders int
	closes   int
}

func (p *everythingWorks) CreateProcess(exePath string, out *os.File) (Process, bool) {
	return Process{ThreadID: 42}, true
}
func (p *everythingWorks) FindWindowByThread(threadID uint32) (Window, bool) {
	return Window(0xbeef), true
}
func (p *everythingWorks) ShowWindow(window Window) bool { p.shown++; return true }
func (p *everythingWorks) HideWindow(window Window) bool { p.hidden++; return true }
func (p *everythingWorks) PlaceBehind(front, behind Window) bool {
	p.reorders++
	return true
}
func (p *everythingWorks) GracefulClose(window Window) { p.closes++ }
func (p *everythingWorks) ForcefulClose(window Window) {}

// nothingWorks fails at process creation, so nothing else is reachable.
type nothingWorks struct{}

func (nothingWorks) CreateProcess(exePath string, out *os.File) (Process, bool) {
	return Process{}, false
}
func (nothingWorks) FindWindowByThread(threadID uint32) (Window, bool) { return 0, false }
func (nothingWorks) ShowWindow(window Window) bool                     { return false }
func (nothingWorks) HideWindow(window Window) bool                     { return false }
func (nothingWorks) PlaceBehind(front, behind Window) bool             { return false }
func (nothingWorks) GracefulClose(window Window)                       {}
func (nothingWorks) ForcefulClose(window Window)                       {}

// cantFindWindow creates the process but never locates its window.
type cantFindWindow struct{ *everythingWorks }

func (cantFindWindow) FindWindowByThread(threadID uint32) (Window, bool) { return 0, false }

var _ = Describe("splash controller", func() {
	When("process creation fails", func() {
		It("rejects Run and stays Idle", func() {
			controller := NewController("./does_not_exist", os.Stdout, nothingWorks{})
			Expect(controller.Apply(Run{})).To(BeFalse())
			Expect(controller.IsIdle()).To(BeTrue())
		})
	})

	When("the window of the created process cannot be found", func() {
		It("treats the launch as failed and stays Idle", func() {
			controller := NewController("./splash", os.Stdout, cantFindWindow{&everythingWorks{}})
			Expect(controller.Apply(Run{})).To(BeFalse())
			Expect(controller.IsIdle()).To(BeTrue())
			// Close has nothing to close yet.
			Expect(controller.Apply(Close{})).To(BeFalse())
			Expect(controller.IsIdle()).To(BeTrue())
		})
	})

	When("every operation succeeds", func() {
		var provider *everythingWorks
		var controller *Controller

		BeforeEach(func() {
			provider = &everythingWorks{}
			controller = NewController("./splash", os.Stdout, provider)
		})

		It("walks the happy sequence of events", func() {
			Expect(controller.Apply(Run{})).To(BeTrue())
			Expect(controller.IsVisible()).To(BeTrue())

			Expect(controller.Apply(ToggleVisibility{})).To(BeTrue())
			Expect(controller.IsHidden()).To(BeTrue())

			Expect(controller.Apply(ToggleVisibility{})).To(BeTrue())
			Expect(controller.IsVisible()).To(BeTrue())

			Expect(controller.Apply(ToggleVisibility{})).To(BeTrue())
			Expect(controller.IsHidden()).To(BeTrue())

			Expect(controller.Apply(PlaceBehind{Other: Window(7)})).To(BeTrue())
			Expect(controller.IsVisible()).To(BeTrue())

			Expect(controller.Apply(Close{})).To(BeTrue())
			Expect(controller.IsClosed()).To(BeTrue())
			Expect(provider.closes).To(Equal(1))
		})

		It("toggles visibility as its own inverse", func() {
			Expect(controller.Apply(Run{})).To(BeTrue())
			Expect(controller.IsVisible()).To(BeTrue())
			Expect(controller.Apply(ToggleVisibility{})).To(BeTrue())
			Expect(controller.IsHidden()).To(BeTrue())
			Expect(controller.Apply(ToggleVisibility{})).To(BeTrue())
			Expect(controller.IsVisible()).To(BeTrue())
		})

		It("lands Visible when placed behind another window from either side", func() {
			Expect(controller.Apply(Run{})).To(BeTrue())
			Expect(controller.Apply(PlaceBehind{Other: Window(7)})).To(BeTrue())
			Expect(controller.IsVisible()).To(BeTrue())

			Expect(controller.Apply(ToggleVisibility{})).To(BeTrue())
			Expect(controller.IsHidden()).To(BeTrue())
			Expect(controller.Apply(PlaceBehind{Other: Window(7)})).To(BeTrue())
			Expect(controller.IsVisible()).To(BeTrue())
			Expect(provider.reorders).To(Equal(2))
		})

		It("accepts Run only from Idle", func() {
			Expect(controller.Apply(Run{})).To(BeTrue())
			Expect(controller.IsVisible()).To(BeTrue())

			Expect(controller.Apply(Run{})).To(BeFalse())
			Expect(controller.IsVisible()).To(BeTrue())

			Expect(controller.Apply(ToggleVisibility{})).To(BeTrue())
			Expect(controller.IsHidden()).To(BeTrue())
			Expect(controller.Apply(Run{})).To(BeFalse())
			Expect(controller.IsHidden()).To(BeTrue())

			Expect(controller.Apply(Close{})).To(BeTrue())
			Expect(controller.IsClosed()).To(BeTrue())
			Expect(controller.Apply(Run{})).To(BeFalse())
			Expect(controller.IsClosed()).To(BeTrue())
		})

		It("closes only once", func() {
			Expect(controller.Apply(Run{})).To(BeTrue())
			Expect(controller.Apply(Close{})).To(BeTrue())
			Expect(controller.IsClosed()).To(BeTrue())

			// silly attempts start here.
			Expect(controller.Apply(ToggleVisibility{})).To(BeFalse())
			Expect(controller.IsClosed()).To(BeTrue())
			Expect(controller.Apply(Close{})).To(BeFalse())
			Expect(controller.IsClosed()).To(BeTrue())
			Expect(controller.Apply(PlaceBehind{Other: Window(7)})).To(BeFalse())
			Expect(controller.IsClosed()).To(BeTrue())
			Expect(provider.closes).To(Equal(1))
		})
	})

	When("events arrive in states that do not accept them", func() {
		It("rejects every undefined pair from Idle", func() {
			controller := NewController("./splash", os.Stdout, &everythingWorks{})
			Expect(controller.Apply(ToggleVisibility{})).To(BeFalse())
			Expect(controller.IsIdle()).To(BeTrue())
			Expect(controller.Apply(PlaceBehind{Other: Window(7)})).To(BeFalse())
			Expect(controller.IsIdle()).To(BeTrue())
			Expect(controller.Apply(Close{})).To(BeFalse())
			Expect(controller.IsIdle()).To(BeTrue())
		})
	})
})

func TestSplashController(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Splash Controller Test Suite")
}
