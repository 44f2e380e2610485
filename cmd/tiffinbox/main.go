package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"tiffinbox/internal/api"
	"tiffinbox/internal/migrate"
	"tiffinbox/internal/notifier"
	"tiffinbox/internal/xpkg/logger"
	"tiffinbox/internal/xpkg/xerrors"
)

func main() {
	mylogger, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("log error: %v", err)
	}

	// Global flags for selecting the service mode
	fs := flag.NewFlagSet("main", flag.ExitOnError)
	mode := fs.String("mode", "", "service to run: api-service | notification-subscriber | migrate")

	// Only parse the args up to `--mode`, the rest go to the service
	args := os.Args[1:]
	modeArgs := []string{}
	for i, arg := range args {
		if strings.HasPrefix(arg, "--mode") || strings.HasPrefix(arg, "-mode") {
			modeArgs = args[:i+1]
			break
		}
	}
	if err := fs.Parse(modeArgs); err != nil {
		mylogger.Action("startup_failed").Error("Failed to parse flags", err)
		help(fs)
		return
	}

	if *mode == "" {
		mylogger.Action("startup_failed").Error("Failed to start", xerrors.ErrModeFlag)
		help(fs)
		return
	}

	remainingArgs := args[len(modeArgs):]

	ctx := context.Background()
	switch *mode {
	case "api-service", "api":
		l := mylogger.With("service", "api-service")
		l.Action("api_service_started").Info("Successfully started")
		if err := api.Execute(ctx, l, remainingArgs); err != nil {
			l.Action("api_service_failed").Error("Error in api-service", err)
			if !errors.Is(err, xerrors.ErrHelp) {
				log.Fatalf("failed to execute api-service: %s", err)
			}
		}
		l.Action("api_service_completed").Info("Successfully completed")

	case "notification-subscriber", "ns":
		l := mylogger.With("service", "notification-subscriber")
		l.Action("notification_subscriber_started").Info("Successfully started")
		if err := notifier.Execute(ctx, l, remainingArgs); err != nil {
			l.Action("notification_subscriber_failed").Error("Error in notification-subscriber", err)
			if !errors.Is(err, xerrors.ErrHelp) {
				log.Fatalf("failed to execute notification-subscriber: %s", err)
			}
		}
		l.Action("notification_subscriber_completed").Info("Successfully completed")

	case "migrate":
		l := mylogger.With("service", "migrate")
		if err := migrate.Execute(ctx, l, remainingArgs); err != nil {
			l.Action("migrate_failed").Error("Error in migrate", err)
			if !errors.Is(err, xerrors.ErrHelp) {
				log.Fatalf("failed to execute migrate: %s", err)
			}
		}

	default:
		mylogger.Action("startup_failed").Error("Failed to start", xerrors.ErrUnknownService)
		help(fs)
	}
}

func help(fs *flag.FlagSet) {
	fmt.Println("\nUsage:")
	fs.PrintDefaults()
	fmt.Println("\nExample:")
	fmt.Println("  ./tiffinbox --mode=api-service --port=3000")
	fmt.Println("  ./tiffinbox --mode=notification-subscriber --max-workers=10")
	fmt.Println("  ./tiffinbox --mode=migrate --dir=migrations")
}
