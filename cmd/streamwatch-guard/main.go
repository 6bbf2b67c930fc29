// cmd/streamwatch-guard/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hochfrequenz/streamwatch/internal/config"
	"github.com/hochfrequenz/streamwatch/internal/logging"
	"github.com/hochfrequenz/streamwatch/internal/watchdog"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "streamwatch-guard",
		Short: "Watchdog that keeps the streamwatch watcher running",
		Long: `streamwatch-guard launches the streamwatch watcher, waits for it to
exit by any cause, and relaunches it after a fixed delay, forever. Any
exit is treated as unexpected, including a clean code 0.`,
		RunE: run,
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.Watchdog.LogPath)
	if err != nil {
		return fmt.Errorf("opening watchdog log: %w", err)
	}
	defer logFile.Close()

	logger := logging.New(os.Stdout, logFile)
	log := logging.WithTag(logger, "WATCHDOG")

	watcherArgs := cfg.Watchdog.WatcherArgs
	if len(watcherArgs) == 0 {
		watcherArgs = []string{"run"}
	}
	if configPath != "" {
		watcherArgs = append(watcherArgs, "--config", configPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := watchdog.New(cfg.Watchdog.WatcherBinary, watcherArgs, cfg.Watchdog.RestartDelay(), log)
	err = sup.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Infof("watchdog stopped after %d watcher exit(s)", sup.Exits())
		return nil
	}
	return err
}
