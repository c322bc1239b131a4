// Package cmd is for command line interactions with the rmtools
// application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

var settingsFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "rmtools",
	Short: `Normalize RepeatMasker annotations and render coordinate-aligned
diagnostic plots (repeats, read depth, AGP structure) for assembly curation`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "path to a YAML settings file")
}

// initSettings reads the optional settings file into viper before any
// subcommand runs. Flag bindings override file values.
func initSettings() {
	if settingsFile == "" {
		return
	}
	viper.SetConfigFile(settingsFile)
	if err := viper.ReadInConfig(); err != nil {
		stderr.Fatalf("failed to read settings from %s: %v", settingsFile, err)
	}
}
