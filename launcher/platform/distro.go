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

// Package platform implements the capability providers the controllers
// consume: the window side through the Windows API and the distro side
// through wsl.exe. The controllers never import this package; the
// binding happens in the CLI driver.
package platform

import (
	"os"
	"os/exec"
	"os/user"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wsl-distro/launcher/common/logger"
	"github.com/wsl-distro/launcher/launcher/oobe"
)

var log = logger.New(logrus.StandardLogger(), "platform")

const (
	wslExe = "wsl.exe"

	prefillPath = "/var/tmp/prefill.yaml"

	// Marker the distro's profile scripts check to skip the first-run
	// setup on subsequent launches.
	completeMarker = "/var/lib/dlauncher/oobe-complete"

	// Exit code reported when a consumed process outlives its ceiling,
	// same value the Windows wait primitives use.
	waitTimeout = 258
)

// DistroProvider drives the installer of one WSL distribution through
// wsl.exe. Detached processes are held in an internal roster keyed by
// move-only tokens; Consume is the only way a token leaves the roster.
type DistroProvider struct {
	distro   string
	oobeCmd  string
	textMode bool

	mu        sync.Mutex
	nextToken oobe.ProcessToken
	roster    map[oobe.ProcessToken]*exec.Cmd
}

// NewDistroProvider binds a provider to one distribution. oobeCmd is
// the installer entry point inside the distro; textMode forces the text
// frontend when the host cannot run graphical applications.
func NewDistroProvider(distro, oobeCmd string, textMode bool) *DistroProvider {
	return &DistroProvider{
		distro:   distro,
		oobeCmd:  oobeCmd,
		textMode: textMode,
		roster:   make(map[oobe.ProcessToken]*exec.Cmd),
	}
}

// command prepares a wsl.exe invocation running commandLine inside the
// distro's default shell.
func (p *DistroProvider) command(commandLine string) *exec.Cmd {
	return exec.Command(wslExe, "--distribution", p.distro, "--", "sh", "-c", commandLine)
}

// rootCommand is like command but runs as the distro's root user.
func (p *DistroProvider) rootCommand(commandLine string) *exec.Cmd {
	return exec.Command(wslExe, "--distribution", p.distro, "--user", "root", "--", "sh", "-c", commandLine)
}

func (p *DistroProvider) Available() bool {
	return p.command("test -x "+p.oobeCmd).Run() == nil
}

func (p *DistroProvider) Command() string {
	return p.oobeCmd
}

func (p *DistroProvider) CopyToDistro(source, destination string) bool {
	f, err := os.Open(source)
	if err != nil {
		log.WithField("source", source).WithField("error", err).
			Error("cannot open file for copying into the distro")
		return false
	}
	defer f.Close()

	cmd := p.rootCommand("cat > '" + destination + "'")
	cmd.Stdin = f
	if err := cmd.Run(); err != nil {
		log.WithField("destination", destination).WithField("error", err).
			Error("cannot copy file into the distro")
		return false
	}
	return true
}

func (p *DistroProvider) PrefillInfo() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	name := localAccountName(u.Username)
	if name == "" {
		return ""
	}

	cmd := p.rootCommand("cat > '" + prefillPath + "'")
	cmd.Stdin = strings.NewReader("user:\n  name: " + name + "\n")
	if err := cmd.Run(); err != nil {
		log.WithField("error", err).Debug("cannot seed prefill information, continuing without")
		return ""
	}
	return " --prefill=" + prefillPath
}

// localAccountName strips the DOMAIN\ prefix of a Windows account name
// and normalizes it into something a useradd call accepts.
func localAccountName(username string) string {
	if i := strings.LastIndexByte(username, '\\'); i >= 0 {
		username = username[i+1:]
	}
	username = strings.ToLower(username)
	var b strings.Builder
	for _, r := range username {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (p *DistroProvider) MustRunTextMode() bool {
	return p.textMode
}

func (p *DistroProvider) LaunchSync(commandLine string) int {
	cmd := p.command(commandLine)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if cmd.ProcessState == nil {
			log.WithField("error", err).Error("cannot launch command in the distro")
			return -1
		}
	}
	return cmd.ProcessState.ExitCode()
}

func (p *DistroProvider) LaunchAsync(commandLine string) (oobe.ProcessToken, bool) {
	cmd := p.command(commandLine)
	if err := cmd.Start(); err != nil {
		log.WithField("error", err).Error("cannot start detached command in the distro")
		return 0, false
	}

	p.mu.Lock()
	p.nextToken++
	token := p.nextToken
	p.roster[token] = cmd
	p.mu.Unlock()
	return token, true
}

func (p *DistroProvider) Consume(process oobe.ProcessToken, timeout time.Duration) int {
	p.mu.Lock()
	cmd, ok := p.roster[process]
	delete(p.roster, process)
	p.mu.Unlock()
	if !ok {
		return -1
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	if timeout > 0 {
		select {
		case <-done:
		case <-time.After(timeout):
			_ = cmd.Process.Kill()
			<-done
			log.WithField("timeout", timeout).Error("detached command outlived its ceiling")
			return waitTimeout
		}
	} else {
		<-done
	}
	return cmd.ProcessState.ExitCode()
}

func (p *DistroProvider) HandleExitStatus() {
	// Best effort: a missing marker only means the first-run setup is
	// offered again.
	dir := completeMarker[:strings.LastIndexByte(completeMarker, '/')]
	if err := p.rootCommand("mkdir -p '" + dir + "' && touch '" + completeMarker + "'").Run(); err != nil {
		log.WithField("error", err).Warn("cannot mark the first-run setup complete")
	}
}

// UpstreamDefault hands the console over to the distribution's own
// default experience: a plain interactive session through wsl.exe. It
// shares nothing with the installer machinery, so it stays reachable
// whatever failed before.
func UpstreamDefault(distro string) int {
	cmd := exec.Command(wslExe, "--distribution", distro)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil && cmd.ProcessState == nil {
		log.WithField("error", err).Error("cannot launch the default session")
		return -1
	}
	return cmd.ProcessState.ExitCode()
}
