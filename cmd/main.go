package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"blogd/internal/app"
	"blogd/internal/app/cli"
	"blogd/internal/config"
	"blogd/internal/config/logger"
)

// main is the entry point for the application
func main() {
	os.Exit(runApp(os.Args[1:], os.Stdout, os.Stderr))
}

// runApp contains the main application logic and returns the process exit code
func runApp(args []string, stdout, stderr io.Writer) int {
	opts, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\nRun '%s help' for usage.\n", err, config.AppName)
		return 1
	}

	if opts.Type == cli.CommandHelp || opts.Type == cli.CommandVersion {
		return execute(cli.NewCLI(stdout), opts, nil, stderr)
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Type == cli.CommandConfig {
		return execute(cli.NewCLI(stdout), opts, cfg, stderr)
	}

	return serve(createApp(cfg), stderr)
}

// loadConfig wraps config.Load for easier testing
func loadConfig(path string) (*config.Config, error) {
	return config.Load(path)
}

// execute runs an informational command
func execute(c cli.CLI, opts *cli.Options, cfg *config.Config, stderr io.Writer) int {
	if err := c.Execute(opts, cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// serve starts the application, blocks until a shutdown signal and stops it
func serve(application *fx.App, stderr io.Writer) int {
	startCtx, cancel := context.WithTimeout(context.Background(), application.StartTimeout())
	defer cancel()

	if err := application.Start(startCtx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	sig := <-application.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), application.StopTimeout())
	defer cancel()

	if err := application.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return sig.ExitCode
}

// createApp creates the FX application with the given config
func createApp(cfg *config.Config) *fx.App {
	return fx.New(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg),
		app.Module,
	)
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stdout}
		}

		return fxevent.NopLogger
	}
}
