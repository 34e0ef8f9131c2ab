/*
Copyright © 2025 gitjrnl authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitjrnl/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitjrnl",
	Short: "Aggregate GitHub commit history into a day-by-day work journal.",
	Long: `
**********************************************
*                 GIT JRNL                   *
**********************************************

This CLI fetches commits from a GitHub repository, parses duration and status
markers from commit messages, applies per-commit overrides and manual entries
from a project file, and renders the result as a journal grouped by day.

Project files use the ` + "`.gitj`" + ` extension and are plain JSON.
`,
	Example: `
  # Create configuration file
  gitjrnl config create

  # Create a project file for a repository
  gitjrnl project create ./widgets.gitj --repo https://github.com/acme/widgets --identity alice

  # Print the aggregated journal
  gitjrnl show --file ./widgets.gitj

  # Exclude a commit from the journal
  gitjrnl exclude abc123 --file ./widgets.gitj

  # Add a manual entry without a commit
  gitjrnl add --file ./widgets.gitj --name "Planning session" --date 2025-02-03 --duration 60

  # Export the journal
  gitjrnl export --file ./widgets.gitj --output ./journal.csv

  # Start the local web API
  gitjrnl serve --file ./widgets.gitj
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.gitjrnl.yaml, then ./.gitjrnl.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gitjrnl" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gitjrnl")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: gitjrnl config create")
	}
}
