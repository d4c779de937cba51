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

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wsl-distro/launcher/launcher/oobe"
	"github.com/wsl-distro/launcher/launcher/platform"
	"github.com/wsl-distro/launcher/launcher/splash"
)

const spinnerTick = 100 * time.Millisecond

var yellow = color.New(color.FgHiYellow).SprintFunc()

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "boot the distribution and drive its first-run setup",
	Run:   runLauncher,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func newInstallerController() (*oobe.Controller, string) {
	distro := viper.GetString("distro")
	provider := platform.NewDistroProvider(distro,
		viper.GetString("oobe_command"),
		viper.GetBool("text"))
	return oobe.NewController(provider, os.Stdout), distro
}

// runLauncher is the interactive first-run flow: splash up, installer
// through its states, splash down, upstream session on any dead end.
func runLauncher(cmd *cobra.Command, args []string) {
	sessionLog := log.WithPrefix("run").WithField("session", uuid.NewString())

	splashController := startSplash()
	defer closeSplash(splashController)

	controller, distro := newInstallerController()

	if !controller.Apply(oobe.InteractiveInstall{}) || controller.IsUpstreamDefaultInstall() {
		fallbackToUpstream(controller, distro)
		return
	}
	textMode := controller.IsPreparedTui()

	if !controller.Apply(oobe.StartInstaller{}) || controller.IsUpstreamDefaultInstall() {
		fallbackToUpstream(controller, distro)
		return
	}

	blockOnInstaller(controller, textMode)
	if !controller.IsSuccess() {
		fallbackToUpstream(controller, distro)
		return
	}
	sessionLog.Info("first-run setup finished")
}

// startSplash launches the splash screen when one is configured. A
// failed launch is not fatal; the boot just runs without it.
func startSplash() *splash.Controller {
	exePath := viper.GetString("splash_exe")
	if exePath == "" {
		return nil
	}
	controller := splash.NewController(exePath, os.Stdout, platform.NewSplashProvider())
	if !controller.Apply(splash.Run{}) {
		log.Warn("continuing without a splash screen")
		return nil
	}
	return controller
}

func closeSplash(controller *splash.Controller) {
	if controller == nil {
		return
	}
	controller.Apply(splash.Close{})
}

// blockOnInstaller waits for the installer to finish. The spinner only
// runs for the graphical frontend; the text frontend owns the console.
func blockOnInstaller(controller *oobe.Controller, textMode bool) {
	if textMode {
		controller.Apply(oobe.BlockOnInstaller{})
		return
	}
	s := spinner.New(spinner.CharSets[11], spinnerTick)
	s.Color("yellow")
	s.Suffix = " waiting for the installer to finish..."
	s.Start()
	controller.Apply(oobe.BlockOnInstaller{})
	s.Stop()
}

// fallbackToUpstream hands over to the plain upstream session. This
// path shares nothing with the installer machinery that just failed.
func fallbackToUpstream(controller *oobe.Controller, distro string) {
	if reason, ok := controller.FallbackReason(); ok {
		log.WithField("reason", reason.String()).
			Warn("installer path failed")
	}
	fmt.Println(yellow("Launching the default distribution experience instead."))
	if exitCode := platform.UpstreamDefault(distro); exitCode != 0 {
		os.Exit(exitCode)
	}
}
