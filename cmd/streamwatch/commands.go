package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/hochfrequenz/streamwatch/internal/config"
	"github.com/hochfrequenz/streamwatch/internal/domain"
	"github.com/hochfrequenz/streamwatch/internal/fetcher"
	"github.com/hochfrequenz/streamwatch/internal/guard"
	"github.com/hochfrequenz/streamwatch/internal/logging"
	"github.com/hochfrequenz/streamwatch/internal/notify"
	"github.com/hochfrequenz/streamwatch/internal/watcher"
)

func init() {
	// run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Watch all configured channels and capture live streams",
		RunE:  runRun,
	}
	rootCmd.AddCommand(runCmd)

	// check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Probe each configured channel once and report liveness",
		RunE:  runCheck,
	}
	rootCmd.AddCommand(checkCmd)

	// version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the streamwatch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

func buildChannels(cfg *config.Config) ([]domain.Channel, error) {
	if len(cfg.Watcher.Channels) == 0 {
		return nil, fmt.Errorf("no channels configured (set [watcher] channels in %s)", config.DefaultConfigPath())
	}
	channels := make([]domain.Channel, 0, len(cfg.Watcher.Channels))
	for _, raw := range cfg.Watcher.Channels {
		ch, err := domain.NewChannel(raw, cfg.Watcher.OutputRoot)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	channels, err := buildChannels(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Watcher.OutputRoot, 0755); err != nil {
		return fmt.Errorf("creating output root: %w", err)
	}
	logFile, err := logging.OpenFile(filepath.Join(cfg.Watcher.OutputRoot, "watcher.log"))
	if err != nil {
		return fmt.Errorf("opening watcher log: %w", err)
	}
	defer logFile.Close()

	logger := logging.New(os.Stdout, logFile)
	log := logging.WithTag(logger, "watcher")

	client := fetcher.NewClient()
	if err := client.CheckTools(); err != nil {
		log.Errorf("%v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watcher.AutoUpdate {
		log.Info("updating fetch tool")
		if err := client.SelfUpdate(ctx); err != nil {
			log.Warnf("fetch tool update failed: %v", err)
		}
	}
	if cfg.Watcher.UpdateSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.Watcher.UpdateSchedule, func() {
			if err := client.SelfUpdate(context.Background()); err != nil {
				log.Warnf("scheduled fetch tool update failed: %v", err)
			}
		})
		if err != nil {
			log.Warnf("invalid update_schedule %q: %v", cfg.Watcher.UpdateSchedule, err)
		} else {
			c.Start()
			defer c.Stop()
		}
	}

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.Notifications.Desktop {
		notifier = notify.NewDesktopNotifier(true)
	}

	diskGuard := guard.NewDiskGuard(cfg.Watcher.MinFreeDiskGB)
	f := watcher.NewFetcher(client)

	loops := make([]*watcher.Loop, 0, len(channels))
	for _, ch := range channels {
		loops = append(loops, watcher.NewLoop(ch, cfg.Watcher, f, diskGuard, notifier, logger))
	}

	log.Infof("watching %d channel(s), output root %s", len(loops), cfg.Watcher.OutputRoot)
	err = watcher.NewScheduler(loops...).Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("shutting down")
		return nil
	}
	return err
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	channels, err := buildChannels(cfg)
	if err != nil {
		return err
	}

	client := fetcher.NewClient()
	if err := client.CheckTools(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tSTATUS\tRESOLVED URL")
	for _, ch := range channels {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		resolved, err := client.ProbeLive(probeCtx, ch.LiveURL)
		cancel()

		switch {
		case err != nil:
			fmt.Fprintf(w, "%s\terror\t%v\n", ch.Name, err)
		case resolved == "":
			fmt.Fprintf(w, "%s\tnot live\t-\n", ch.Name)
		default:
			fmt.Fprintf(w, "%s\tLIVE\t%s\n", ch.Name, resolved)
		}
	}
	return w.Flush()
}
