// Package cmd implements the pinnacle CLI surface on top of cobra, with
// viper flag binding for persistent configuration overrides.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pinnacle-wm/pinnacle/internal/config"
)

// Version is set during build.
var Version = "0.1.0-dev"

var (
	flagConfigDir string
	flagBackend   string
	flagForce     bool
	flagAllowRoot bool
	flagNoConfig  bool
)

var rootCmd = &cobra.Command{
	Use:          "pinnacle",
	Short:        "Pinnacle - a tiling Wayland compositor",
	Long:         "Pinnacle is a tiling Wayland compositor driven by an external, fully scriptable window-rule and layout surface.",
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "directory to load pinnacle.toml from")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "winit", "backend to run under: winit|udev")
	rootCmd.PersistentFlags().BoolVar(&flagForce, "force", false, "skip the 'are you sure' prompts")
	rootCmd.PersistentFlags().BoolVar(&flagAllowRoot, "allow-root", false, "allow running as root (udev backend only)")
	rootCmd.PersistentFlags().BoolVar(&flagNoConfig, "no-config", false, "start with no config file at all")

	viper.BindPFlag("backend.name", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("backend.allow_root", rootCmd.PersistentFlags().Lookup("allow-root"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() error {
	if flagNoConfig {
		return nil
	}
	return config.Init(flagConfigDir)
}

func exitError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
