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

// Package cmd contains all the entry points for command line
// subcommands, following library convention. The subcommands translate
// the command line into the initial events the controllers consume.
package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wsl-distro/launcher/common/logger"
	"github.com/wsl-distro/launcher/common/product"
)

var log = logger.New(logrus.StandardLogger(), product.NAME)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   product.NAME,
	Short: product.PRETTY_FULLNAME,
	Long: fmt.Sprintf(`The %s boots a WSL distribution behind a splash screen and drives its
first-run setup, falling back to the plain upstream session whenever the
installer cannot do its job.`, product.PRETTY_FULLNAME),
	Run: runLauncher,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithField("error", err).Fatal("cannot run command")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.Set("version", product.VERSION)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("configuration file (default $HOME/.config/%s/settings.yaml)", product.NAME))
	rootCmd.PersistentFlags().String("distro", "ubuntu", "name of the WSL distribution to drive")
	rootCmd.PersistentFlags().String("oobe_command", "/usr/libexec/oobe-setup", "installer entry point inside the distro")
	rootCmd.PersistentFlags().String("splash_exe", "", "path of the splash application on the host, empty disables the splash")
	rootCmd.PersistentFlags().Bool("text", false, "force the installer's text frontend")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "show verbose output for debug purposes")

	viper.BindPFlag("distro", rootCmd.PersistentFlags().Lookup("distro"))
	viper.BindPFlag("oobe_command", rootCmd.PersistentFlags().Lookup("oobe_command"))
	viper.BindPFlag("splash_exe", rootCmd.PersistentFlags().Lookup("splash_exe"))
	viper.BindPFlag("text", rootCmd.PersistentFlags().Lookup("text"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("distro", "ubuntu")
	viper.SetDefault("oobe_command", "/usr/libexec/oobe-setup")
	viper.SetDefault("text", false)
	viper.SetDefault("verbose", false)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.WithField("error", err).Error("cannot find configuration file")
			os.Exit(1)
		}

		// Search config in .config/dlauncher directory with name "settings.yaml"
		viper.AddConfigPath(path.Join(home, ".config/"+product.NAME))
		viper.SetConfigName("settings")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logLevel, err := logrus.ParseLevel(viper.GetString("log.level"))
		if err == nil {
			logrus.SetLevel(logLevel)
		}
		log.WithField("file", viper.ConfigFileUsed()).
			Debug("configuration loaded")
	}

	if viper.GetBool("verbose") {
		viper.Set("log.level", "debug")
		logrus.SetLevel(logrus.DebugLevel)
	}
}
