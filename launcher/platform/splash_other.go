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

//go:build !windows

package platform

import (
	"os"

	"github.com/wsl-distro/launcher/launcher/splash"
)

// SplashProvider exists only on the Windows host side. Elsewhere every
// operation fails, which the controller treats as a failed launch and
// the driver as "continue without a splash".
type SplashProvider struct{}

func NewSplashProvider() *SplashProvider { return &SplashProvider{} }

func (p *SplashProvider) CreateProcess(exePath string, out *os.File) (splash.Process, bool) {
	return splash.Process{}, false
}

func (p *SplashProvider) FindWindowByThread(threadID uint32) (splash.Window, bool) {
	return 0, false
}

func (p *SplashProvider) ShowWindow(window splash.Window) bool         { return false }
func (p *SplashProvider) HideWindow(window splash.Window) bool         { return false }
func (p *SplashProvider) PlaceBehind(front, behind splash.Window) bool { return false }
func (p *SplashProvider) GracefulClose(window splash.Window)           {}
func (p *SplashProvider) ForcefulClose(window splash.Window)           {}
