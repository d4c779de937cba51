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

// Package oobe orchestrates the distro's out-of-box experience: the
// first-run installer that may run unattended from an answers file,
// interactively in graphical or text mode, or as a reconfiguration of
// an already-installed distro. Every irrecoverable failure funnels into
// the single UpstreamDefaultInstall terminal state, so the application
// has exactly one place to detect that the upstream default experience
// must run instead.
//
// There is no cancellation event. The graphical readiness ceiling is
// the only way out of a blocking wait; text mode is assumed already
// interactive and waits without a ceiling.
package oobe

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wsl-distro/launcher/common/logger"
	"github.com/wsl-distro/launcher/launcher/sm"
)

var log = logger.New(logrus.StandardLogger(), "oobe")

const (
	// Answers files are staged here inside the distro before the
	// installer reads them.
	stagingDir = "/var/tmp/"

	// How long a graphical installer may take to signal readiness
	// before the launcher gives up on it.
	guiReadyCeiling = 4 * time.Minute

	textModeFlag    = " --text"
	autoInstallFlag = " --autoinstall "
)

// Reason explains why the controller fell back to the upstream default
// install path.
type Reason int

const (
	// ReasonNotImplemented: this distro build ships no installer.
	ReasonNotImplemented Reason = iota
	// ReasonFailure: a precondition or operation failed along the way.
	ReasonFailure
)

func (r Reason) String() string {
	switch r {
	case ReasonNotImplemented:
		return "NOT_IMPLEMENTED"
	case ReasonFailure:
		return "FAILURE"
	}
	return "UNKNOWN"
}

// Event is the closed set of requests the installer controller accepts.
type Event interface{ isOobeEvent() }

// AutoInstall prepares an unattended installation seeded by the given
// answers file. Produced by `install --autoinstall <file>`.
type AutoInstall struct{ AnswersFile string }

// InteractiveInstall prepares a user-driven installation, graphical
// when the environment allows it.
type InteractiveInstall struct{}

// Reconfig runs the installer's reconfiguration variant synchronously
// on an already-installed distro.
type Reconfig struct{}

// StartInstaller launches a prepared installer detached.
type StartInstaller struct{}

// BlockOnInstaller blocks the calling goroutine until the installer
// finishes its job.
type BlockOnInstaller struct{}

func (AutoInstall) isOobeEvent()        {}
func (InteractiveInstall) isOobeEvent() {}
func (Reconfig) isOobeEvent()           {}
func (StartInstaller) isOobeEvent()     {}
func (BlockOnInstaller) isOobeEvent()   {}

// Controller owns the installer orchestration. Like the splash
// controller it is synchronous and single-threaded; Reconfig and
// BlockOnInstaller block the calling goroutine inside Apply.
type Controller struct {
	out      *os.File
	provider Provider
	machine  *sm.Machine[Event]
}

// NewController returns a controller in the Closed state. User-facing
// messages (as opposed to log lines) go to out.
func NewController(provider Provider, out *os.File) *Controller {
	c := &Controller{
		out:      out,
		provider: provider,
	}
	c.machine = sm.New[Event](&closed{c: c})
	return c
}

// Apply submits one event. It returns false when the current state
// defines no handler for the event kind, leaving the state untouched.
func (c *Controller) Apply(event Event) bool {
	return c.machine.Apply(event)
}

func (c *Controller) IsClosed() bool         { return sm.Is[*closed](c.machine) }
func (c *Controller) IsAutoInstalling() bool { return sm.Is[*autoInstalling](c.machine) }
func (c *Controller) IsPreparedGui() bool    { return sm.Is[*preparedGui](c.machine) }
func (c *Controller) IsPreparedTui() bool    { return sm.Is[*preparedTui](c.machine) }
func (c *Controller) IsReady() bool          { return sm.Is[*ready](c.machine) }
func (c *Controller) IsSuccess() bool        { return sm.Is[*success](c.machine) }

// IsUpstreamDefaultInstall reports whether the installer path failed
// for good and the upstream default experience must run instead.
func (c *Controller) IsUpstreamDefaultInstall() bool {
	return sm.Is[*upstreamDefaultInstall](c.machine)
}

// FallbackReason returns the reason code carried by the terminal
// fallback state, or false when the controller is anywhere else.
func (c *Controller) FallbackReason() (Reason, bool) {
	if state, ok := c.machine.Current().(*upstreamDefaultInstall); ok {
		return state.reason, true
	}
	return 0, false
}

func fallback(reason Reason) *upstreamDefaultInstall {
	log.WithField("reason", reason.String()).
		Warn("installer unusable, falling back to the upstream default install")
	return &upstreamDefaultInstall{reason: reason}
}

// The closed set of installer states.
var _ = [...]sm.State[Event]{
	(*closed)(nil),
	(*autoInstalling)(nil),
	(*preparedGui)(nil),
	(*preparedTui)(nil),
	(*ready)(nil),
	(*success)(nil),
	(*upstreamDefaultInstall)(nil),
}

// closed: initial state, nothing prepared yet.
type closed struct{ c *Controller }

func (s *closed) OnEvent(event Event) sm.State[Event] {
	switch ev := event.(type) {
	case AutoInstall:
		return s.autoInstall(ev)
	case InteractiveInstall:
		return s.interactiveInstall()
	case Reconfig:
		return s.reconfig()
	}
	return nil
}

// autoInstall stages the answers file inside the distro and composes
// the unattended text-mode command line.
func (s *closed) autoInstall(ev AutoInstall) sm.State[Event] {
	if !s.c.provider.Available() {
		return fallback(ReasonNotImplemented)
	}
	if _, err := os.Stat(ev.AnswersFile); err != nil {
		fmt.Fprintln(s.c.out, "Answers file not found. Cannot proceed with auto installation.")
		log.WithField("answersFile", ev.AnswersFile).
			WithField("error", err).
			Error("answers file not found")
		return fallback(ReasonFailure)
	}
	destination := stagingDir + filepath.Base(ev.AnswersFile)
	if !s.c.provider.CopyToDistro(ev.AnswersFile, destination) {
		fmt.Fprintln(s.c.out, "Failed to copy the answers file into the distro file system. Cannot proceed with auto installation.")
		log.WithField("answersFile", ev.AnswersFile).
			WithField("destination", destination).
			Error("cannot copy the answers file into the distro")
		return fallback(ReasonFailure)
	}

	commandLine := s.c.provider.Command() + textModeFlag + autoInstallFlag + destination
	return &autoInstalling{c: s.c, commandLine: commandLine}
}

// interactiveInstall decides between the graphical and text frontends
// and seeds the command line with prefill user information.
func (s *closed) interactiveInstall() sm.State[Event] {
	if !s.c.provider.Available() {
		return fallback(ReasonNotImplemented)
	}

	commandLine := s.c.provider.Command() + s.c.provider.PrefillInfo()

	// The installer runs graphical by default unless the environment
	// requires otherwise.
	if s.c.provider.MustRunTextMode() {
		return &preparedTui{c: s.c, commandLine: commandLine + textModeFlag}
	}
	return &preparedGui{c: s.c, commandLine: commandLine}
}

// reconfig launches the reconfiguration variant from start to finish,
// blocking until it exits. This is the only transition that blocks
// directly inside Closed.
func (s *closed) reconfig() sm.State[Event] {
	if !s.c.provider.Available() {
		return fallback(ReasonNotImplemented)
	}

	commandLine := s.c.provider.Command()
	if s.c.provider.MustRunTextMode() {
		commandLine += textModeFlag
	}

	if exitCode := s.c.provider.LaunchSync(commandLine); exitCode != 0 {
		log.WithField("exitCode", exitCode).
			Error("installer reconfiguration finished with error")
		return fallback(ReasonFailure)
	}
	return &success{}
}

// autoInstalling: unattended command line composed, waiting for the go.
type autoInstalling struct {
	c           *Controller
	commandLine string
}

func (s *autoInstalling) OnEvent(event Event) sm.State[Event] {
	switch event.(type) {
	case BlockOnInstaller:
		if exitCode := s.c.provider.LaunchSync(s.commandLine); exitCode != 0 {
			log.WithField("exitCode", exitCode).
				Error("unattended installation finished with error")
			return fallback(ReasonFailure)
		}
		s.c.provider.HandleExitStatus()
		return &success{}
	}
	return nil
}

type installMode int

const (
	modeGui installMode = iota
	modeText
)

// preparedGui: interactive command line composed for the graphical
// frontend.
type preparedGui struct {
	c           *Controller
	commandLine string
}

func (s *preparedGui) OnEvent(event Event) sm.State[Event] {
	switch event.(type) {
	case StartInstaller:
		return s.c.startInstallerAsync(modeGui, s.commandLine)
	}
	return nil
}

// preparedTui: same, but the text frontend is required.
type preparedTui struct {
	c           *Controller
	commandLine string
}

func (s *preparedTui) OnEvent(event Event) sm.State[Event] {
	switch event.(type) {
	case StartInstaller:
		return s.c.startInstallerAsync(modeText, s.commandLine)
	}
	return nil
}

// startInstallerAsync is shared by both prepared states; they only
// differ in the readiness ceiling applied. A graphical installer may
// hang before signaling readiness, so it gets a bounded ceiling; the
// text frontend is already interactive and gets none.
func (c *Controller) startInstallerAsync(mode installMode, commandLine string) sm.State[Event] {
	process, ok := c.provider.LaunchAsync(commandLine)
	if !ok {
		log.Error("cannot start the installer")
		return fallback(ReasonFailure)
	}
	var timeout time.Duration // no ceiling for text mode
	if mode == modeGui {
		timeout = guiReadyCeiling
	}
	return &ready{c: c, process: process, timeout: timeout}
}

// ready: installer launched detached; it owns the process token until
// BlockOnInstaller consumes it.
type ready struct {
	c       *Controller
	process ProcessToken
	timeout time.Duration
}

func (s *ready) OnEvent(event Event) sm.State[Event] {
	switch event.(type) {
	case BlockOnInstaller:
		// Consume releases the token on every path; this state is
		// never revisited.
		if exitCode := s.c.provider.Consume(s.process, s.timeout); exitCode != 0 {
			log.WithField("exitCode", exitCode).
				Error("installer finished with error or timed out")
			return fallback(ReasonFailure)
		}
		s.c.provider.HandleExitStatus()
		return &success{}
	}
	return nil
}

// success: terminal. The installer finished its job.
type success struct{}

func (s *success) OnEvent(event Event) sm.State[Event] {
	return nil
}

// upstreamDefaultInstall: terminal. The installer path failed; the
// application must hand over to the upstream default experience, which
// never depends on the machinery that just failed.
type upstreamDefaultInstall struct {
	reason Reason
}

func (s *upstreamDefaultInstall) OnEvent(event Event) sm.State[Event] {
	return nil
}
