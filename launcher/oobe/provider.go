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

package oobe

import "time"

// ProcessToken identifies a detached installer process held by the
// Provider. The token is move-only by contract: it is minted by
// LaunchAsync and released exactly once by Consume.
type ProcessToken uint64

// Provider supplies the distro and process effects the installer
// controller sequences but does not implement.
type Provider interface {
	// Available reports whether the installer exists in this distro build.
	Available() bool

	// Command returns the command line that starts the installer inside
	// the distro, without any mode flags.
	Command() string

	// CopyToDistro copies a host file into the distro's filesystem.
	CopyToDistro(source, destination string) bool

	// PrefillInfo composes the command line fragment that seeds the
	// installer's input fields with default user information.
	PrefillInfo() string

	// MustRunTextMode reports whether the environment cannot host the
	// installer's graphical frontend.
	MustRunTextMode() bool

	// LaunchSync runs the command line to completion, blocking the
	// calling goroutine, and returns the process exit code.
	LaunchSync(commandLine string) int

	// LaunchAsync starts the command line detached and returns a token
	// for the running process.
	LaunchAsync(commandLine string) (ProcessToken, bool)

	// Consume blocks until the process behind the token finishes or the
	// timeout elapses, whichever comes first; zero timeout means no
	// ceiling. The token is released on every path; timeout expiry
	// reports a non-zero code.
	Consume(process ProcessToken, timeout time.Duration) int

	// HandleExitStatus marks the first-run setup complete in the
	// surrounding environment after a successful installer run.
	HandleExitStatus()
}
