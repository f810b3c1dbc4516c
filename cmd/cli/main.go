package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/liftsim/internal/app"
	"github.com/vk/liftsim/internal/cli"
	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/hcl"
	"github.com/vk/liftsim/internal/yamlcfg"
)

// main is the entrypoint for the liftsim application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application panicked: %v", r)
		}
	}()

	liftsim, err := app.NewApp(outW, appConfig, loaderFor(appConfig.FleetPath))
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	return liftsim.Run(ctx)
}

// loaderFor picks the YAML loader for .yaml/.yml files and HCL otherwise.
func loaderFor(path string) config.Loader {
	if yamlcfg.IsYAML(path) {
		return yamlcfg.NewLoader()
	}
	return hcl.NewLoader()
}
