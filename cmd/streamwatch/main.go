package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	configPath string
	rootCmd    = &cobra.Command{
		Use:   "streamwatch",
		Short: "Streamwatch - live-stream channel watcher and recorder",
		Long: `Streamwatch polls a set of live-video channels, detects when one goes
live, and captures both the video and the live chat with an external
fetch tool until the stream ends.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
