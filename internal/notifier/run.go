package notifier

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"tiffinbox/internal/xpkg/config"
	"tiffinbox/internal/xpkg/logger"
	"tiffinbox/internal/xpkg/xerrors"
)

// Execute starts the notification subscriber and blocks until shutdown.
func Execute(ctx context.Context, mylog logger.Logger, args []string) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := flag.NewFlagSet("notification-subscriber", flag.ContinueOnError)
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config-path", "config.yaml", "path for config yaml")
	maxWorkers := fs.Int("max-workers", 10, "Max concurrent notification handlers")

	if err := fs.Parse(args); err != nil {
		return xerrors.ErrParseCmd
	}
	if *showHelp {
		fs.Usage()
		return xerrors.ErrHelp
	}
	if *maxWorkers <= 0 {
		return fmt.Errorf("max-workers must be positive: %d", *maxWorkers)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		mylog.Action("config_load_failed").Error("Failed to load config", err)
		return err
	}

	sub := NewSubscriber(sigCtx, cfg, *maxWorkers, mylog)

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- sub.Run()
	}()

	select {
	case <-sigCtx.Done():
		mylog.Action("shutdown_signal_received").Info("Shutdown signal received")
		return sub.Stop()
	case err := <-runErrCh:
		if err != nil {
			mylog.Action("subscriber_failed").Error("Subscriber failed unexpectedly", err)
		}
		return err
	}
}
