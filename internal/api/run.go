package api

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/server"
	"tiffinbox/internal/xpkg/config"
	"tiffinbox/internal/xpkg/logger"
	"tiffinbox/internal/xpkg/xerrors"
)

type params struct {
	apiParams  *core.APIParams
	configPath string
	cfg        *config.Config
}

// Execute starts the REST API service and blocks until shutdown.
func Execute(ctx context.Context, mylog logger.Logger, args []string) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := parseParams(args)
	if err != nil {
		mylog.Action("command_parse_failed").Error("Invalid command received", err)
		return err
	}
	if err := validateParams(params); err != nil {
		mylog.Action("command_validation_failed").Error("Invalid command received", err)
		return err
	}
	mylog.Action("command_validation_completed").Info("Successfully validated params")

	srv := server.New(sigCtx, context.Background(), params.cfg, params.apiParams, mylog)

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- srv.Run()
	}()

	select {
	case <-sigCtx.Done():
		mylog.Action("shutdown_signal_received").Info("Shutdown signal received")
		return srv.Stop(context.Background())
	case err := <-runErrCh:
		if err != nil && !errors.Is(err, server.ErrServerClosed) {
			mylog.Action("api_service_failed").Error("Server failed unexpectedly", err)
			return err
		}
		mylog.Action("server_stopped").Info("Server exited normally")
		return nil
	}
}

func parseParams(args []string) (*params, error) {
	fs := flag.NewFlagSet("api-service", flag.ContinueOnError)
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config-path", "config.yaml", "path for config yaml")
	port := fs.Int("port", 0, "Port to run the API service (overrides config)")

	if err := fs.Parse(args); err != nil {
		return nil, xerrors.ErrParseCmd
	}

	if *showHelp {
		fs.Usage()
		return nil, xerrors.ErrHelp
	}

	return &params{
		apiParams:  &core.APIParams{Port: *port},
		configPath: *configPath,
	}, nil
}

func validateParams(params *params) error {
	cfg, err := config.Load(params.configPath)
	if err != nil {
		return err
	}
	params.cfg = cfg

	if params.apiParams.Port == 0 {
		params.apiParams.Port = cfg.HTTP.Port
	}
	if params.apiParams.Port <= 0 || params.apiParams.Port >= 65536 {
		return fmt.Errorf("port must be in [1, 65535]: %d", params.apiParams.Port)
	}
	return nil
}
