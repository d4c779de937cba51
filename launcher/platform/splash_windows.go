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

//go:build windows

package platform

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/wsl-distro/launcher/launcher/splash"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumThreadWindows        = user32.NewProc("EnumThreadWindows")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procIsWindow                 = user32.NewProc("IsWindow")
	procPostMessageW             = user32.NewProc("PostMessageW")
	procSetWindowPos             = user32.NewProc("SetWindowPos")
	procShowWindow               = user32.NewProc("ShowWindow")
)

const (
	swHide  = 0
	swShow  = 5
	wmClose = 0x0010

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpShowWindow = 0x0040
)

// SplashProvider manipulates the splash application's window through
// user32. It is as single-threaded as the controller that drives it.
type SplashProvider struct {
	enumResult uintptr
	enumProc   uintptr
}

func NewSplashProvider() *SplashProvider {
	p := &SplashProvider{}
	p.enumProc = windows.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
		p.enumResult = hwnd
		return 0 // stop at the first top-level window of the thread
	})
	return p
}

func (p *SplashProvider) CreateProcess(exePath string, out *os.File) (splash.Process, bool) {
	startup := new(windows.StartupInfo)
	startup.Cb = uint32(unsafe.Sizeof(*startup))
	if out != nil {
		startup.Flags = windows.STARTF_USESTDHANDLES
		startup.StdOutput = windows.Handle(out.Fd())
		startup.StdErr = windows.Handle(out.Fd())
	}

	cmdLine, err := windows.UTF16PtrFromString(exePath)
	if err != nil {
		return splash.Process{}, false
	}

	process := new(windows.ProcessInformation)
	err = windows.CreateProcess(nil, cmdLine, nil, nil, true, 0, nil, nil, startup, process)
	if err != nil {
		log.WithField("exePath", exePath).WithField("error", err).
			Error("CreateProcess failed")
		return splash.Process{}, false
	}
	// The controller tracks the window, not the process; both handles
	// can go.
	windows.CloseHandle(process.Process)
	windows.CloseHandle(process.Thread)
	return splash.Process{ThreadID: process.ThreadId}, true
}

func (p *SplashProvider) FindWindowByThread(threadID uint32) (splash.Window, bool) {
	p.enumResult = 0
	procEnumThreadWindows.Call(uintptr(threadID), p.enumProc, 0)
	return splash.Window(p.enumResult), p.enumResult != 0
}

func (p *SplashProvider) ShowWindow(window splash.Window) bool {
	procShowWindow.Call(uintptr(window), swShow)
	return p.isWindow(window)
}

func (p *SplashProvider) HideWindow(window splash.Window) bool {
	procShowWindow.Call(uintptr(window), swHide)
	return p.isWindow(window)
}

func (p *SplashProvider) PlaceBehind(front, behind splash.Window) bool {
	ret, _, _ := procSetWindowPos.Call(uintptr(front), uintptr(behind),
		0, 0, 0, 0, swpNoMove|swpNoSize|swpShowWindow)
	return ret != 0
}

func (p *SplashProvider) GracefulClose(window splash.Window) {
	procPostMessageW.Call(uintptr(window), wmClose, 0, 0)
}

func (p *SplashProvider) ForcefulClose(window splash.Window) {
	var pid uint32
	procGetWindowThreadProcessId.Call(uintptr(window), uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return
	}
	handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, pid)
	if err != nil {
		return
	}
	windows.TerminateProcess(handle, 1)
	windows.CloseHandle(handle)
}

func (p *SplashProvider) isWindow(window splash.Window) bool {
	ret, _, _ := procIsWindow.Call(uintptr(window))
	return ret != 0
}
