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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wsl-distro/launcher/launcher/oobe"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "run the distribution's first-run setup",
	Long: `install performs the distribution's first-run setup. With --autoinstall
it runs unattended, seeded by the given answers file; otherwise it is the
same interactive flow as the bare launcher.`,
	Run: runInstall,
}

func init() {
	installCmd.Flags().String("autoinstall", "", "answers file for an unattended installation")
	viper.BindPFlag("autoinstall", installCmd.Flags().Lookup("autoinstall"))
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) {
	answersFile := viper.GetString("autoinstall")
	if answersFile == "" {
		runLauncher(cmd, args)
		return
	}

	controller, distro := newInstallerController()
	if !controller.Apply(oobe.AutoInstall{AnswersFile: answersFile}) ||
		controller.IsUpstreamDefaultInstall() {
		fallbackToUpstream(controller, distro)
		return
	}

	controller.Apply(oobe.BlockOnInstaller{})
	if !controller.IsSuccess() {
		fallbackToUpstream(controller, distro)
		return
	}
	log.WithPrefix("install").Info("unattended installation finished")
}
