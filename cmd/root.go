/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotcast",
	Short: "Follow Spotify shows like podcast feeds",
	Long: `spotcast treats Spotify shows as podcast feeds.

It runs as a background daemon that periodically lists the episodes of
each subscribed show through the Spotify Web API and records what is
new, and it can render any show as an RSS feed.

Episodes are not downloadable: Spotify does not expose audio, so each
episode links to the web player instead.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
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
	// Global flags can be added here if needed
}
