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

import "os"

// Window is an opaque window handle as understood by the Provider.
type Window uintptr

// Process identifies a splash process created by the Provider through
// the execution thread that owns its message loop.
type Process struct {
	ThreadID uint32
}

// Provider supplies the window and process effects the splash controller
// sequences but does not implement.
type Provider interface {
	// CreateProcess spawns the splash application with its output wired
	// to out, reporting the identity of the created process.
	CreateProcess(exePath string, out *os.File) (Process, bool)

	// FindWindowByThread locates the top-level window owned by the given
	// execution thread.
	FindWindowByThread(threadID uint32) (Window, bool)

	ShowWindow(window Window) bool
	HideWindow(window Window) bool

	// PlaceBehind reorders front so that it sits immediately behind the
	// other window, making front visible in the process.
	PlaceBehind(front, behind Window) bool

	// GracefulClose asks the window to close itself. Fire and forget.
	GracefulClose(window Window)

	// ForcefulClose terminates the window's owning process. The
	// controller never calls it; it is kept in reserve for drivers that
	// must reap a stuck splash.
	ForcefulClose(window Window)
}
