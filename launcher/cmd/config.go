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

	"github.com/wsl-distro/launcher/launcher/oobe"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "re-run the configuration flow of an installed distribution",
	Run:   runReconfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runReconfig(cmd *cobra.Command, args []string) {
	controller, distro := newInstallerController()

	// Reconfig launches the installer synchronously; Apply only
	// returns once it exits.
	controller.Apply(oobe.Reconfig{})
	if !controller.IsSuccess() {
		fallbackToUpstream(controller, distro)
		return
	}
	log.WithPrefix("config").Info("reconfiguration finished")
}
